package gateway

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcSubmitter func(ctx context.Context, text string) (string, error)

func (f funcSubmitter) Endpoint() string { return "test" }

func (f funcSubmitter) Submit(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

func TestDisplayText(t *testing.T) {
	assert.Equal(t, "body", DisplayText(Reply{Body: "body"}))
	assert.Equal(t, "Err", DisplayText(Reply{Body: "partial", Err: errors.New("x")}))
}

func TestFuture_IsLazy(t *testing.T) {
	var calls atomic.Int32
	d := NewDispatcher(funcSubmitter(func(ctx context.Context, text string) (string, error) {
		calls.Add(1)
		return text, nil
	}), nil)

	f := d.Prepare(context.Background(), "hello")
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	r := f.Wait()
	assert.Equal(t, "hello", r.Body)
	assert.Equal(t, f.Seq(), r.Seq)
	assert.Equal(t, int32(1), calls.Load())

	// waiting again does not resend
	f.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestFuture_FailureMapsToErr(t *testing.T) {
	d := NewDispatcher(funcSubmitter(func(ctx context.Context, text string) (string, error) {
		return "", &Error{Msg: "connection refused (is the service running?)"}
	}), nil)

	r := d.Submit(context.Background(), "x").Wait()
	require.Error(t, r.Err)
	assert.Equal(t, DisplayError, DisplayText(r))
}

func TestDispatcher_SequenceAndStaleness(t *testing.T) {
	release := make(chan struct{})
	d := NewDispatcher(funcSubmitter(func(ctx context.Context, text string) (string, error) {
		if text == "slow" {
			select {
			case <-release:
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		return text, nil
	}), nil)

	first := d.Submit(context.Background(), "slow")
	second := d.Submit(context.Background(), "fast")

	assert.Equal(t, first.Seq()+1, second.Seq())
	assert.False(t, d.IsCurrent(first.Seq()))
	assert.True(t, d.IsCurrent(second.Seq()))

	r2 := second.Wait()
	assert.Equal(t, "fast", r2.Body)

	// the superseded request was canceled rather than left to race
	r1 := first.Wait()
	assert.ErrorIs(t, r1.Err, context.Canceled)
	close(release)
}

func TestFuture_Cancel(t *testing.T) {
	d := NewDispatcher(funcSubmitter(func(ctx context.Context, text string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), nil)

	f := d.Submit(context.Background(), "x")
	f.Cancel()

	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("future did not complete after cancel")
	}
	assert.Error(t, f.Wait().Err)
}

func TestDispatcher_CancelAll(t *testing.T) {
	d := NewDispatcher(funcSubmitter(func(ctx context.Context, text string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}), nil)

	f := d.Submit(context.Background(), "x")
	d.CancelAll()
	assert.Error(t, f.Wait().Err)
	d.CancelAll()
}
