// Package orchestrator wires the loader → filter → parser → writer pipeline,
// providing dependency injection friendly helpers for consumers that prefer a
// single entry point.
package orchestrator
