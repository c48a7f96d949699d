package lumen

// EnvUnlocker is the host-reentrancy guard: a scoped unlock/relock pair
// for the global lock of an embedding host environment (for example a
// scripting runtime with a global interpreter lock).
//
// The run loop calls Unlock before any operation that may block for a
// nontrivial time and Relock before invoking anything that may call
// back into host code. Failing to unlock before blocking can starve the
// host's scheduler, or deadlock against a producer thread that holds
// the host lock while posting work to the loop.
type EnvUnlocker interface {
	// Unlock releases the host environment's global lock.
	Unlock()

	// Relock reacquires the host environment's global lock.
	Relock()
}

// NoopUnlocker is the EnvUnlocker for the common case where the run
// loop is driven directly from Go and no host environment is involved.
type NoopUnlocker struct{}

// Unlock does nothing.
func (NoopUnlocker) Unlock() {}

// Relock does nothing.
func (NoopUnlocker) Relock() {}
