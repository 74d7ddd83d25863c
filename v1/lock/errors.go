package lock

import "errors"

// Common lock errors
var (
	// ErrUnsupportedInterface is returned when a connection's type cannot be
	// resolved to a known database interface and no override was supplied.
	ErrUnsupportedInterface = errors.New("lock: unsupported database interface")

	// ErrLockNotAcquired is returned by WithLock when the blocking
	// acquisition itself fails, which barring connection failure is not
	// expected in blocking mode.
	ErrLockNotAcquired = errors.New("lock: not acquired")
)

// IsUnsupportedInterfaceError checks if the error indicates that no adapter
// matched the connection type.
func IsUnsupportedInterfaceError(err error) bool {
	return errors.Is(err, ErrUnsupportedInterface)
}

// IsLockNotAcquiredError checks if the error indicates a failed scoped
// acquisition.
func IsLockNotAcquiredError(err error) bool {
	return errors.Is(err, ErrLockNotAcquired)
}
