package bridge

import "sync/atomic"

// ReadyFlag gates tool request admission. Requests arriving before the
// flag is set are dropped; the orchestrator learns about the loss only by
// never receiving a result. The flag latches: once set it stays set.
type ReadyFlag struct {
	ready atomic.Bool
}

// Set marks the bridge ready to execute tool requests.
func (f *ReadyFlag) Set() {
	f.ready.Store(true)
}

// Ready reports whether tool requests are admitted.
func (f *ReadyFlag) Ready() bool {
	return f.ready.Load()
}
