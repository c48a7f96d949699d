// Package logging provides a minimal logging interface for Lumen.
//
// The Logger interface covers the levels the run loop and its
// collaborators need (Debug, Info, Warn, Error). The package ships two
// implementations:
//
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (tests, minimal embeddings)
//
// The interface is intentionally tiny so embedders can plug in whatever
// logger their host application already uses.
package logging
