package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jeanpaul/factorpad/internal/config"
	"github.com/jeanpaul/factorpad/internal/gateway"
	"github.com/jeanpaul/factorpad/internal/schema"
)

// env is what every command needs after flags and config are resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

func (e *env) Close() error {
	if e.closer != nil {
		return e.closer.Close()
	}
	return nil
}

// loadEnv reads the config, applies flag overrides and sets up logging.
// Logs go to the log file when one is set, otherwise to fallback.
func loadEnv(opts *RootOptions, fallback io.Writer) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}

	e := &env{cfg: cfg}
	w := fallback
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		e.closer = f
	}
	e.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	return e, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// submitter builds the HTTP client with the configured timeout and retries.
func (e *env) submitter() (gateway.Submitter, error) {
	timeout, err := e.cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	client := gateway.New(e.cfg.Endpoint,
		gateway.WithTimeout(timeout),
		gateway.WithLogger(e.logger),
	)
	return gateway.WithRetry(client, e.cfg.Retries), nil
}

// validator returns the pre-submit check, or nil when validation is off.
func (e *env) validator() func(string) error {
	if !e.cfg.ValidateRequests {
		return nil
	}
	return schema.NewValidator().ValidateRequest
}
