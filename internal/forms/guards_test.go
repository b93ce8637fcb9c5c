package forms_test

import (
	"sync"
	"testing"

	"github.com/cpghub/cpghub-api/internal/forms"
	"github.com/stretchr/testify/assert"
)

func TestSubmitGuard_SingleSubmission(t *testing.T) {
	var g forms.SubmitGuard

	assert.True(t, g.Begin())
	assert.False(t, g.Begin(), "second submit while in flight must be refused")
	assert.Equal(t, forms.SubmitInFlight, g.State())
}

func TestSubmitGuard_ResetOnlyOnError(t *testing.T) {
	var g forms.SubmitGuard

	assert.True(t, g.Begin())
	g.Fail()
	assert.Equal(t, forms.SubmitIdle, g.State())
	assert.True(t, g.Begin(), "retry allowed after a failed submission")

	// Success path: no reset, the latch stays closed.
	assert.False(t, g.Begin())
}

func TestSubmitGuard_RapidDoubleClick(t *testing.T) {
	var g forms.SubmitGuard
	var mu sync.Mutex
	calls := 0

	submit := func() {
		if !g.Begin() {
			return
		}
		mu.Lock()
		calls++
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			submit()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls, "exactly one create call for a double click")
}

func TestDirtyGuard_CleanFormNavigatesImmediately(t *testing.T) {
	var g forms.DirtyGuard
	navigated := false

	ok := g.Navigate(func() { navigated = true })
	assert.True(t, ok)
	assert.True(t, navigated)
}

func TestDirtyGuard_DirtyFormBlocksThenReplaysOnce(t *testing.T) {
	var g forms.DirtyGuard
	navigations := 0

	g.MarkDirty()
	ok := g.Navigate(func() { navigations++ })
	assert.False(t, ok)
	assert.Equal(t, 0, navigations, "intent held back while dirty")

	g.Discard()
	assert.Equal(t, 1, navigations, "intent replayed exactly once")

	// A second discard must not replay again.
	g.Discard()
	assert.Equal(t, 1, navigations)
	assert.False(t, g.Dirty())
}

func TestDirtyGuard_StayDropsPendingIntent(t *testing.T) {
	var g forms.DirtyGuard
	navigations := 0

	g.MarkDirty()
	g.Navigate(func() { navigations++ })
	g.Stay()
	g.Discard()

	assert.Equal(t, 0, navigations, "stay cancels the blocked navigation")
	assert.False(t, g.Dirty(), "discard still clears the dirty flag")
}

func TestDirtyGuard_MarkCleanUnblocks(t *testing.T) {
	var g forms.DirtyGuard
	navigated := false

	g.MarkDirty()
	g.MarkClean()
	ok := g.Navigate(func() { navigated = true })
	assert.True(t, ok)
	assert.True(t, navigated)
}
