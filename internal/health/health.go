package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jeanpaul/factorpad/internal/gateway"
)

type Status struct {
	Endpoint   string
	Reachable  bool
	StatusCode int
	Error      string
	Latency    time.Duration
}

// Check verifies that the inference endpoint answers HTTP at all. Any
// response counts as reachable; a CGI script commonly rejects GET, so the
// status code is reported but not judged.
func Check(ctx context.Context, endpoint string) Status {
	s := Status{Endpoint: endpoint}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	resp, err := http.DefaultClient.Do(req)
	s.Latency = time.Since(start)
	if err != nil {
		s.Error = fmt.Sprintf("cannot reach %s: %s", endpoint, gateway.FriendlyError(err))
		return s
	}
	defer resp.Body.Close()

	s.Reachable = true
	s.StatusCode = resp.StatusCode
	return s
}

// Summary renders the status as a single line.
func (s Status) Summary() string {
	if !s.Reachable {
		return "✗ " + s.Error
	}
	return fmt.Sprintf("✓ %s answered HTTP %d (%s)", s.Endpoint, s.StatusCode, s.Latency.Round(time.Millisecond))
}
