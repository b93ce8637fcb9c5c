package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/cpghub/cpghub-api/internal/forms"
	"github.com/cpghub/cpghub-api/internal/models"
	apperrors "github.com/cpghub/cpghub-api/pkg/errors"
)

// Form kinds with a category selector session.
const (
	FormKindJobPosting      = "job_posting"
	FormKindTalentProfile   = "talent_profile"
	FormKindServiceProvider = "service_provider"
)

const formSessionTTL = 2 * time.Hour

// FormSession is the server-side state of one in-progress form: the category
// selector with its dependent groups plus the submit and dirty guards.
type FormSession struct {
	ID       string
	Kind     string
	Selector *forms.CategorySelector
	Submit   *forms.SubmitGuard
	Dirty    *forms.DirtyGuard

	mu sync.Mutex
}

// FormSessionState is the serializable view of a session returned to the
// client after every mutation.
type FormSessionState struct {
	SessionID string                `json:"sessionId"`
	Kind      string                `json:"kind"`
	Selected  []string              `json:"selected"`
	OtherOpen bool                  `json:"otherOpen"`
	Groups    []DependentGroupState `json:"groups,omitempty"`
	Submit    string                `json:"submitState"`
	Dirty     bool                  `json:"dirty"`
}

// DependentGroupState is the visible/values snapshot of one dependent group.
type DependentGroupState struct {
	Field   string   `json:"field"`
	Visible bool     `json:"visible"`
	Values  []string `json:"values,omitempty"`
}

// FormSessionService keeps in-progress form state server-side so the
// conditional selector and guard semantics live in one place. Sessions expire
// after two hours of inactivity.
type FormSessionService struct {
	sessions *gocache.Cache
}

// NewFormSessionService creates a new form session service instance
func NewFormSessionService() *FormSessionService {
	return &FormSessionService{
		sessions: gocache.New(formSessionTTL, 10*time.Minute),
	}
}

// StartSession creates a selector session for a form kind. The service-
// provider form binds its conditional sub-field groups to the selector so
// hiding a group resets its values.
func (s *FormSessionService) StartSession(kind string) (*FormSessionState, error) {
	var selector *forms.CategorySelector

	switch kind {
	case FormKindJobPosting, FormKindTalentProfile:
		selector = forms.NewCategorySelector("area_of_specialization")
	case FormKindServiceProvider:
		selector = forms.NewCategorySelector("category_of_service")
		selector.Bind("type_of_broker_service", forms.RequireAny("Broker"))
		selector.Bind("markets_covered", forms.RequireAny(models.MarketsCoveredTriggers...))
	default:
		return nil, apperrors.InvalidInputError("kind", fmt.Sprintf("unknown form kind %q", kind))
	}

	session := &FormSession{
		ID:       uuid.NewString(),
		Kind:     kind,
		Selector: selector,
		Submit:   &forms.SubmitGuard{},
		Dirty:    &forms.DirtyGuard{},
	}

	s.sessions.Set(session.ID, session, formSessionTTL)
	return s.snapshot(session), nil
}

func (s *FormSessionService) get(sessionID string) (*FormSession, error) {
	v, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, apperrors.NotFoundError("form session")
	}
	return v.(*FormSession), nil
}

// Toggle flips a label in the session's selector and marks the form dirty.
func (s *FormSessionService) Toggle(sessionID, label string) (*FormSessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.Selector.Toggle(label)
	session.Dirty.MarkDirty()
	session.mu.Unlock()

	s.touch(session)
	return s.snapshot(session), nil
}

// AddCustom validates and appends a free-text label.
func (s *FormSessionService) AddCustom(sessionID, text string) (*FormSessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	addErr := session.Selector.AddCustom(text)
	if addErr == nil {
		session.Dirty.MarkDirty()
	}
	session.mu.Unlock()

	if addErr != nil {
		return nil, addErr
	}

	s.touch(session)
	return s.snapshot(session), nil
}

// Remove drops a chip from the selection.
func (s *FormSessionService) Remove(sessionID, label string) (*FormSessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	session.Selector.Remove(label)
	session.Dirty.MarkDirty()
	session.mu.Unlock()

	s.touch(session)
	return s.snapshot(session), nil
}

// SetGroupValues replaces the values of a dependent group. Values for a
// hidden group are dropped.
func (s *FormSessionService) SetGroupValues(sessionID, field string, values []string) (*FormSessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	found := false
	for _, g := range session.Selector.Groups() {
		if g.Field() == field {
			g.SetValues(values...)
			found = true
			break
		}
	}
	if found {
		session.Dirty.MarkDirty()
	}
	session.mu.Unlock()

	if !found {
		return nil, apperrors.InvalidInputError("field", fmt.Sprintf("no dependent group %q", field))
	}

	s.touch(session)
	return s.snapshot(session), nil
}

// State returns the current session snapshot.
func (s *FormSessionService) State(sessionID string) (*FormSessionState, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(session), nil
}

// BeginSubmit attempts the submit latch. It returns false when a submission
// is already in flight; the caller must not proceed.
func (s *FormSessionService) BeginSubmit(sessionID string) (bool, error) {
	session, err := s.get(sessionID)
	if err != nil {
		return false, err
	}
	return session.Submit.Begin(), nil
}

// FailSubmit resets the latch after a failed submission so the user can
// retry.
func (s *FormSessionService) FailSubmit(sessionID string) error {
	session, err := s.get(sessionID)
	if err != nil {
		return err
	}
	session.Submit.Fail()
	return nil
}

// CompleteSubmit marks the form saved and drops the session. The latch stays
// in flight on success; the client navigates away.
func (s *FormSessionService) CompleteSubmit(sessionID string) error {
	session, err := s.get(sessionID)
	if err != nil {
		return err
	}
	session.Dirty.MarkClean()
	s.sessions.Delete(sessionID)
	return nil
}

// Discard confirms dropping unsaved changes and removes the session.
func (s *FormSessionService) Discard(sessionID string) error {
	session, err := s.get(sessionID)
	if err != nil {
		return err
	}
	session.Dirty.Discard()
	s.sessions.Delete(sessionID)
	return nil
}

func (s *FormSessionService) touch(session *FormSession) {
	s.sessions.Set(session.ID, session, formSessionTTL)
}

func (s *FormSessionService) snapshot(session *FormSession) *FormSessionState {
	session.mu.Lock()
	defer session.mu.Unlock()

	state := &FormSessionState{
		SessionID: session.ID,
		Kind:      session.Kind,
		Selected:  session.Selector.Selected(),
		OtherOpen: session.Selector.OtherOpen(),
		Dirty:     session.Dirty.Dirty(),
	}

	switch session.Submit.State() {
	case forms.SubmitInFlight:
		state.Submit = "in_flight"
	default:
		state.Submit = "idle"
	}

	for _, g := range session.Selector.Groups() {
		state.Groups = append(state.Groups, DependentGroupState{
			Field:   g.Field(),
			Visible: g.Visible(),
			Values:  g.Values(),
		})
	}

	return state
}
