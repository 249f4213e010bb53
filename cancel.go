package zealdoc

import (
	"context"
	"sync/atomic"
)

// CancellationToken is a cooperative cancellation flag. Copies of a token
// share the same flag, so canceling any copy is observed by all of them.
// The zero value is a token that can never be canceled.
type CancellationToken struct {
	canceled *atomic.Bool
}

// NewCancellationToken returns a token that has not been canceled.
func NewCancellationToken() CancellationToken {
	return CancellationToken{canceled: new(atomic.Bool)}
}

// Cancel sets the shared flag. Safe to call from any goroutine, any number of times.
func (t CancellationToken) Cancel() {
	if t.canceled != nil {
		t.canceled.Store(true)
	}
}

// IsCanceled reports whether any copy of the token was canceled.
func (t CancellationToken) IsCanceled() bool {
	return t.canceled != nil && t.canceled.Load()
}

// CancelOnDone cancels the token when ctx is done. The returned function
// detaches the token from ctx and reports whether it did so before ctx ended.
func (t CancellationToken) CancelOnDone(ctx context.Context) (stop func() bool) {
	return context.AfterFunc(ctx, t.Cancel)
}
