package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck_Reachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	defer server.Close()

	s := Check(context.Background(), server.URL)
	assert.True(t, s.Reachable)
	assert.Equal(t, http.StatusMethodNotAllowed, s.StatusCode)
	assert.Empty(t, s.Error)
	assert.Contains(t, s.Summary(), "HTTP 405")
}

func TestCheck_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	s := Check(context.Background(), url)
	assert.False(t, s.Reachable)
	assert.Contains(t, s.Error, "cannot reach")
	assert.Contains(t, s.Summary(), "✗")
}

func TestCheck_BadURL(t *testing.T) {
	s := Check(context.Background(), "http://[::1")
	assert.False(t, s.Reachable)
	assert.NotEmpty(t, s.Error)
}
