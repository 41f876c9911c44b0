package headless

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/jeanpaul/factorpad/internal/gateway"
)

// Runner submits requests without the TUI. Responses go to Out verbatim;
// diagnostics go to Err.
type Runner struct {
	Sub      gateway.Submitter
	Out      io.Writer
	Err      io.Writer
	Parallel int               // concurrent file submissions, default 4
	Validate func(string) error // optional pre-submit check
	Logger   *slog.Logger
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// RunText submits a single request. On failure "Err" is printed to Out, the
// reason to Err, and the error is returned.
func (r *Runner) RunText(ctx context.Context, text string) error {
	body, err := r.submit(ctx, text)
	fmt.Fprintln(r.Out, gateway.DisplayText(gateway.Reply{Body: body, Err: err}))
	if err != nil {
		fmt.Fprintf(r.Err, "[Error: %s]\n", err)
		return err
	}
	return nil
}

func (r *Runner) submit(ctx context.Context, text string) (string, error) {
	if r.Validate != nil {
		if err := r.Validate(text); err != nil {
			return "", err
		}
	}
	return r.Sub.Submit(ctx, text)
}

type fileResult struct {
	body string
	err  error
}

// RunFiles submits every file matching patterns. Submissions run in
// parallel; output is printed in path order once all have finished.
func (r *Runner) RunFiles(ctx context.Context, patterns []string) error {
	paths, err := ExpandPatterns(patterns)
	if err != nil {
		return err
	}

	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	limit := r.Parallel
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				results[i] = fileResult{err: err}
				return nil
			}
			r.logger().Debug("submitting file", "path", path)
			body, err := r.submit(gctx, string(data))
			results[i] = fileResult{body: body, err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, path := range paths {
		res := results[i]
		fmt.Fprintf(r.Out, "==> %s <==\n", path)
		fmt.Fprintln(r.Out, gateway.DisplayText(gateway.Reply{Body: res.body, Err: res.err}))
		if res.err != nil {
			failed++
			fmt.Fprintf(r.Err, "[Error: %s: %s]\n", path, res.err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, len(paths))
	}
	return nil
}

// ExpandPatterns resolves doublestar glob patterns to a sorted, de-duplicated
// list of files. A pattern without matches is an error.
func ExpandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
