package lock

import "context"

// Manager mints Locks with a shared set of default options, typically a
// logger and an observer wired once through dependency injection. Per-lock
// options are applied after the manager's defaults and can override them.
//
// Unlike a Lock, a Manager carries no per-attempt state and is safe to share.
type Manager struct {
	defaults []Option
}

// NewManager creates a Manager applying opts to every Lock it constructs.
func NewManager(opts ...Option) *Manager {
	return &Manager{defaults: opts}
}

// New creates a Lock over conn and key with the manager's defaults plus
// opts. See New for the connection and key contracts.
func (m *Manager) New(conn interface{}, key interface{}, opts ...Option) (*Lock, error) {
	combined := make([]Option, 0, len(m.defaults)+len(opts))
	combined = append(combined, m.defaults...)
	combined = append(combined, opts...)
	return New(conn, key, combined...)
}

// WithLock constructs a Lock for conn and key and runs fn while holding it.
// Shorthand for m.New followed by Lock.WithLock.
func (m *Manager) WithLock(ctx context.Context, conn interface{}, key interface{}, fn func(ctx context.Context) error, opts ...Option) error {
	l, err := m.New(conn, key, opts...)
	if err != nil {
		return err
	}
	return l.WithLock(ctx, fn)
}
