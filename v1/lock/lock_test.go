package lock

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter is a scripted adapter that records every call, used to verify
// the coordinator's protocol without a database.
type fakeAdapter struct {
	tryAcquireCalls int
	acquireCalls    int
	releaseCalls    int
	rollbackCalls   int
	detachCalls     int

	tryAcquireResult bool
	releaseResult    bool

	tryAcquireErr error
	acquireErr    error
	releaseErr    error
	rollbackErr   error
}

func (f *fakeAdapter) name() string { return "fake" }

func (f *fakeAdapter) tryAcquire(ctx context.Context, lockID int64, scope Scope, shared bool) (bool, error) {
	f.tryAcquireCalls++
	return f.tryAcquireResult, f.tryAcquireErr
}

func (f *fakeAdapter) acquire(ctx context.Context, lockID int64, scope Scope, shared bool) error {
	f.acquireCalls++
	return f.acquireErr
}

func (f *fakeAdapter) release(ctx context.Context, lockID int64, shared bool) (bool, error) {
	f.releaseCalls++
	return f.releaseResult, f.releaseErr
}

func (f *fakeAdapter) rollback(ctx context.Context) error {
	f.rollbackCalls++
	return f.rollbackErr
}

func (f *fakeAdapter) detach() {
	f.detachCalls++
}

// newTestLock builds a Lock directly over a fake adapter, bypassing
// resolution.
func newTestLock(fa *fakeAdapter, opts ...Option) *Lock {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Lock{
		key:             "test-key",
		lockID:          EncodeKey("test-key"),
		adpt:            fa,
		iface:           Interface(fa.name()),
		scope:           o.scope,
		shared:          o.shared,
		rollbackOnError: o.rollbackOnError,
		logger:          o.logger,
		observer:        o.observer,
	}
}

func TestAcquireTransitionsToAcquired(t *testing.T) {
	fa := &fakeAdapter{}
	l := newTestLock(fa)

	ok, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, l.Locked())
	assert.Equal(t, 1, fa.acquireCalls)
}

func TestAcquireIdempotentWhileHeld(t *testing.T) {
	fa := &fakeAdapter{}
	l := newTestLock(fa)

	_, err := l.Acquire(context.Background())
	require.NoError(t, err)

	// A second acquire must not issue another database call; otherwise the
	// holder would deadlock against itself in blocking mode.
	ok, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, fa.acquireCalls)

	ok, err = l.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, fa.tryAcquireCalls)
}

func TestAcquireErrorLeavesUnacquired(t *testing.T) {
	connErr := errors.New("connection reset")
	fa := &fakeAdapter{acquireErr: connErr}
	l := newTestLock(fa)

	ok, err := l.Acquire(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, connErr)
	assert.False(t, l.Locked())
}

func TestTryAcquireContendedReturnsFalse(t *testing.T) {
	fa := &fakeAdapter{tryAcquireResult: false}
	l := newTestLock(fa)

	ok, err := l.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, l.Locked())
	assert.Equal(t, 1, fa.tryAcquireCalls)
}

func TestTryAcquireSuccess(t *testing.T) {
	fa := &fakeAdapter{tryAcquireResult: true}
	l := newTestLock(fa)

	ok, err := l.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, l.Locked())
}

func TestReleaseIdempotent(t *testing.T) {
	fa := &fakeAdapter{releaseResult: true}
	l := newTestLock(fa)

	_, err := l.Acquire(context.Background())
	require.NoError(t, err)

	released, err := l.Release(context.Background())
	require.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, 1, fa.releaseCalls)

	// The second release reports false without another database call and
	// never errors, so cleanup paths can call it unconditionally.
	released, err = l.Release(context.Background())
	require.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, 1, fa.releaseCalls)
}

func TestReleaseWithoutAcquireIsNoOp(t *testing.T) {
	fa := &fakeAdapter{}
	l := newTestLock(fa)

	released, err := l.Release(context.Background())
	require.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, 0, fa.releaseCalls)
}

func TestTransactionScopeReleaseIssuesNoUnlock(t *testing.T) {
	fa := &fakeAdapter{}
	l := newTestLock(fa, WithScope(ScopeTransaction))

	_, err := l.Acquire(context.Background())
	require.NoError(t, err)

	released, err := l.Release(context.Background())
	require.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, 0, fa.releaseCalls, "transaction-scope locks have no explicit unlock")

	// The local transition still happens: the lock no longer reports held,
	// and the adapter's session binding is dropped.
	assert.False(t, l.Locked())
	assert.Equal(t, 1, fa.detachCalls, "a pinned connection must go back to its pool")
}

func TestTransactionScopeReacquireAfterRelease(t *testing.T) {
	fa := &fakeAdapter{}
	l := newTestLock(fa, WithScope(ScopeTransaction))

	_, err := l.Acquire(context.Background())
	require.NoError(t, err)

	_, err = l.Release(context.Background())
	require.NoError(t, err)

	// The server dropped the lock at transaction end, so a later acquire
	// must go back to the database rather than short-circuit on stale state.
	ok, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, fa.acquireCalls)
}

func TestHandleErrorRollsBackByDefault(t *testing.T) {
	fa := &fakeAdapter{}
	l := newTestLock(fa)

	err := l.HandleError(context.Background(), errors.New("worker failed"))
	require.NoError(t, err)
	assert.Equal(t, 1, fa.rollbackCalls)
}

func TestHandleErrorRespectsPolicy(t *testing.T) {
	fa := &fakeAdapter{}
	l := newTestLock(fa, WithoutRollbackOnError())

	err := l.HandleError(context.Background(), errors.New("worker failed"))
	require.NoError(t, err)
	assert.Equal(t, 0, fa.rollbackCalls)
}

func TestHandleErrorReportsRollbackFailure(t *testing.T) {
	rbErr := errors.New("rollback failed")
	fa := &fakeAdapter{rollbackErr: rbErr}
	l := newTestLock(fa)

	err := l.HandleError(context.Background(), errors.New("worker failed"))
	assert.ErrorIs(t, err, rbErr)
}

func TestWithLockSuccessPath(t *testing.T) {
	fa := &fakeAdapter{releaseResult: true}
	l := newTestLock(fa)

	ran := false
	err := l.WithLock(context.Background(), func(ctx context.Context) error {
		ran = true
		assert.True(t, l.Locked())
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, fa.acquireCalls)
	assert.Equal(t, 1, fa.releaseCalls)
	assert.Equal(t, 0, fa.rollbackCalls)
	assert.False(t, l.Locked())
}

func TestWithLockErrorRollsBackReleasesAndReturnsOriginal(t *testing.T) {
	fa := &fakeAdapter{releaseResult: true}
	l := newTestLock(fa)

	workErr := errors.New("work failed")
	err := l.WithLock(context.Background(), func(ctx context.Context) error {
		return workErr
	})

	// The callback's error comes back unchanged, after exactly one rollback
	// and one release.
	assert.Equal(t, workErr, err)
	assert.Equal(t, 1, fa.rollbackCalls)
	assert.Equal(t, 1, fa.releaseCalls)
}

func TestWithLockErrorWithoutRollbackPolicy(t *testing.T) {
	fa := &fakeAdapter{releaseResult: true}
	l := newTestLock(fa, WithoutRollbackOnError())

	workErr := errors.New("work failed")
	err := l.WithLock(context.Background(), func(ctx context.Context) error {
		return workErr
	})

	assert.Equal(t, workErr, err)
	assert.Equal(t, 0, fa.rollbackCalls)
	assert.Equal(t, 1, fa.releaseCalls)
}

func TestWithLockAcquireFailure(t *testing.T) {
	connErr := errors.New("connection reset")
	fa := &fakeAdapter{acquireErr: connErr}
	l := newTestLock(fa)

	err := l.WithLock(context.Background(), func(ctx context.Context) error {
		t.Fatal("callback must not run when acquisition fails")
		return nil
	})

	assert.True(t, IsLockNotAcquiredError(err))
	assert.ErrorIs(t, err, connErr)
	assert.Equal(t, 0, fa.releaseCalls)
}

func TestWithLockReleaseFailureSurfacesOnSuccessOnly(t *testing.T) {
	relErr := errors.New("release failed")
	fa := &fakeAdapter{releaseErr: relErr}
	l := newTestLock(fa)

	err := l.WithLock(context.Background(), func(ctx context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, relErr)

	// When the callback already failed, its error wins over the release
	// failure.
	fa2 := &fakeAdapter{releaseErr: relErr}
	l2 := newTestLock(fa2)
	workErr := errors.New("work failed")
	err = l2.WithLock(context.Background(), func(ctx context.Context) error {
		return workErr
	})
	assert.Equal(t, workErr, err)
}

func TestAccessors(t *testing.T) {
	fa := &fakeAdapter{}
	l := newTestLock(fa, WithScope(ScopeTransaction), WithSharedLock())

	assert.Equal(t, "test-key", l.Key())
	assert.Equal(t, EncodeKey("test-key"), l.LockID())
	assert.Equal(t, ScopeTransaction, l.Scope())
	assert.True(t, l.Shared())
	assert.Equal(t, Interface("fake"), l.InterfaceName())
	assert.False(t, l.Locked())
}
