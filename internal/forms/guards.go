package forms

import "sync"

// SubmitState is the one-shot submission latch state.
type SubmitState int

const (
	SubmitIdle SubmitState = iota
	SubmitInFlight
)

// SubmitGuard guarantees at most one in-flight create/update per user
// gesture. The latch moves idle -> in-flight on the first submit attempt and
// returns to idle only on a failed outcome; success navigates away, so the
// guard is never reset on success. Every error path must call Fail or the
// form stays locked - that is a correctness obligation on the caller.
type SubmitGuard struct {
	mu    sync.Mutex
	state SubmitState
}

// Begin attempts the idle -> in-flight transition. It returns false when a
// submission is already in flight, in which case the caller must not proceed.
func (g *SubmitGuard) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == SubmitInFlight {
		return false
	}
	g.state = SubmitInFlight
	return true
}

// Fail resets the latch after a caught submission error so the user can
// retry.
func (g *SubmitGuard) Fail() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = SubmitIdle
}

// State returns the current latch state.
func (g *SubmitGuard) State() SubmitState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// DirtyGuard intercepts navigation away from a form with unsaved changes.
// The blocked navigation intent is stored and replayed exactly once when the
// user confirms the discard.
type DirtyGuard struct {
	mu      sync.Mutex
	dirty   bool
	pending func()
}

// MarkDirty records that the form's values differ from their last-saved
// state.
func (g *DirtyGuard) MarkDirty() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dirty = true
}

// MarkClean records a successful save; navigation proceeds freely again.
func (g *DirtyGuard) MarkClean() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dirty = false
	g.pending = nil
}

// Dirty reports whether unsaved changes exist.
func (g *DirtyGuard) Dirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dirty
}

// Navigate runs the intent immediately when the form is clean. When dirty,
// the intent is held back and false is returned so the caller can show the
// discard-or-stay choice.
func (g *DirtyGuard) Navigate(intent func()) bool {
	g.mu.Lock()
	if g.dirty {
		g.pending = intent
		g.mu.Unlock()
		return false
	}
	g.mu.Unlock()

	intent()
	return true
}

// Discard confirms dropping the unsaved changes and replays the blocked
// navigation exactly once.
func (g *DirtyGuard) Discard() {
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.dirty = false
	g.mu.Unlock()

	if pending != nil {
		pending()
	}
}

// Stay cancels the pending navigation and keeps the form as-is.
func (g *DirtyGuard) Stay() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = nil
}
