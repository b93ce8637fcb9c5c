package forms

import (
	"github.com/cpghub/cpghub-api/internal/validation"
)

// OtherLabel is the sentinel chip that reveals the free-text entry sub-form
// instead of joining the selected set.
const OtherLabel = "Other"

// CategorySelector drives a multi-select category/specialization picker with
// an "Other" free-text sub-flow. Selection is a set (toggling is involutive,
// order-irrelevant) but chips are displayed in click order.
type CategorySelector struct {
	field      string // field path reported in errors, e.g. "category_of_service"
	selected   []string
	otherOpen  bool
	dependents []*DependentGroup
}

// NewCategorySelector creates a selector reporting errors against the given
// field path.
func NewCategorySelector(field string) *CategorySelector {
	return &CategorySelector{field: field}
}

// Toggle flips a label in or out of the selected set. The "Other" sentinel
// only toggles visibility of the text-entry sub-form and never joins the set.
func (s *CategorySelector) Toggle(label string) {
	if label == OtherLabel {
		s.otherOpen = !s.otherOpen
		return
	}

	for i, existing := range s.selected {
		if existing == label {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			s.refreshDependents()
			return
		}
	}

	s.selected = append(s.selected, label)
	s.refreshDependents()
}

// AddCustom validates and appends a free-text category. The value is
// trimmed, title-cased, checked against the category-text rules and rejected
// when it is a case-insensitive duplicate of any existing entry.
func (s *CategorySelector) AddCustom(text string) error {
	if !validation.IsCategoryText(text) {
		return validation.FieldError{Field: s.field, Message: validation.CategoryTextError(text)}
	}

	label := validation.TitleCase(text)
	for _, existing := range s.selected {
		if validation.EqualFold(existing, label) {
			return validation.FieldError{Field: s.field, Message: label + " is already selected"}
		}
	}

	s.selected = append(s.selected, label)
	s.refreshDependents()
	return nil
}

// Remove drops a chip from the selection. Built-in and custom labels are
// handled identically.
func (s *CategorySelector) Remove(label string) {
	for i, existing := range s.selected {
		if existing == label {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			s.refreshDependents()
			return
		}
	}
}

// Selected returns the chips in click order.
func (s *CategorySelector) Selected() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// Has reports whether any of the given labels is currently selected.
func (s *CategorySelector) Has(labels ...string) bool {
	for _, label := range labels {
		for _, existing := range s.selected {
			if existing == label {
				return true
			}
		}
	}
	return false
}

// OtherOpen reports whether the free-text sub-form is currently revealed.
func (s *CategorySelector) OtherOpen() bool {
	return s.otherOpen
}

func (s *CategorySelector) refreshDependents() {
	for _, g := range s.dependents {
		g.refresh(s.selected)
	}
}

// DependentGroup is a field group rendered exactly when a predicate over the
// current selection holds. When the predicate transitions from true to false
// the group's value is reset, so stale selections are never silently
// submitted.
type DependentGroup struct {
	field   string
	when    func(selected []string) bool
	values  []string
	visible bool
}

// Bind attaches a dependent field group to the selector. The predicate is
// evaluated immediately against the current selection.
func (s *CategorySelector) Bind(field string, when func(selected []string) bool) *DependentGroup {
	g := &DependentGroup{field: field, when: when}
	g.refresh(s.selected)
	s.dependents = append(s.dependents, g)
	return g
}

// Groups returns the dependent groups in bind order.
func (s *CategorySelector) Groups() []*DependentGroup {
	out := make([]*DependentGroup, len(s.dependents))
	copy(out, s.dependents)
	return out
}

// RequireAny is a predicate factory: the group is visible when the selection
// intersects the trigger labels.
func RequireAny(triggers ...string) func([]string) bool {
	return func(selected []string) bool {
		for _, trigger := range triggers {
			for _, label := range selected {
				if label == trigger {
					return true
				}
			}
		}
		return false
	}
}

func (g *DependentGroup) refresh(selected []string) {
	wasVisible := g.visible
	g.visible = g.when(selected)
	if wasVisible && !g.visible {
		g.values = nil
	}
}

// Visible reports whether the group is currently rendered.
func (g *DependentGroup) Visible() bool {
	return g.visible
}

// SetValues replaces the group's current values. Values set while the group
// is hidden are dropped on the next submit anyway, but we reject them here
// to keep the state consistent.
func (g *DependentGroup) SetValues(values ...string) {
	if !g.visible {
		return
	}
	g.values = append([]string(nil), values...)
}

// Values returns the group's current values, empty when hidden.
func (g *DependentGroup) Values() []string {
	if !g.visible {
		return nil
	}
	out := make([]string, len(g.values))
	copy(out, g.values)
	return out
}

// Field returns the field path the group reports errors against.
func (g *DependentGroup) Field() string {
	return g.field
}
