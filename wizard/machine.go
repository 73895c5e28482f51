// Package wizard implements the multi-step application form as an explicit
// state machine, independent of any UI.
package wizard

import (
	"errors"
	"fmt"

	"github.com/AESiR-0/mad-labs-2/models"
)

type Status int

const (
	StatusRoleSelect Status = iota
	StatusEditing
	StatusSubmitting
	StatusSucceeded
	// StatusFailed is the last step after a failed submission. Input and
	// navigation work as in StatusEditing.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusRoleSelect:
		return "role_select"
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// SubmitErrorMessage is shown after any failed submission.
const SubmitErrorMessage = "Failed to submit application. Please try again."

var (
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrUnknownField      = errors.New("field is not part of the current step")
)

// Event is one of SelectRole, SetField, Next, Back, SubmitResult.
type Event interface {
	event()
}

type SelectRole struct{ Role models.Role }

type SetField struct{ Key, Value string }

type Next struct{}

type Back struct{}

type SubmitResult struct{ Err error }

func (SelectRole) event()   {}
func (SetField) event()     {}
func (Next) event()         {}
func (Back) event()         {}
func (SubmitResult) event() {}

// Machine holds the wizard state: role, step index, accumulated fields and
// status. It only changes through Dispatch.
type Machine struct {
	role        models.Role
	stepIndex   int
	fields      map[string]string
	fieldErrors map[string]string
	status      Status
	submitError string
}

func New() *Machine {
	return &Machine{status: StatusRoleSelect}
}

// Dispatch applies an event. A non-nil request is returned only when Next
// completes the last step; the caller must send it and report the outcome
// with SubmitResult. A step that fails validation returns (nil, nil) and
// leaves messages in FieldErrors.
func (m *Machine) Dispatch(ev Event) (*models.ApplicationRequest, error) {
	switch e := ev.(type) {
	case SelectRole:
		return nil, m.selectRole(e.Role)
	case SetField:
		return nil, m.setField(e.Key, e.Value)
	case Next:
		return m.next()
	case Back:
		return nil, m.back()
	case SubmitResult:
		return nil, m.submitResult(e.Err)
	}
	return nil, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
}

func (m *Machine) selectRole(role models.Role) error {
	if m.status != StatusRoleSelect {
		return m.invalid("select role")
	}
	if Steps(role) == nil {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidTransition, role)
	}
	m.role = role
	m.stepIndex = 0
	m.fields = make(map[string]string)
	m.fieldErrors = nil
	m.submitError = ""
	m.status = StatusEditing
	return nil
}

func (m *Machine) setField(key, value string) error {
	if !m.editable() {
		return m.invalid("set field")
	}
	if !m.steps()[m.stepIndex].hasField(key) {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	m.fields[key] = value
	return nil
}

func (m *Machine) next() (*models.ApplicationRequest, error) {
	if !m.editable() {
		return nil, m.invalid("next")
	}

	steps := m.steps()
	errs := ValidateStep(steps[m.stepIndex], m.fields)
	if len(errs) > 0 {
		m.fieldErrors = errs
		return nil, nil
	}
	m.fieldErrors = nil

	if m.stepIndex < len(steps)-1 {
		m.stepIndex++
		m.status = StatusEditing
		return nil, nil
	}

	req, err := models.NewApplicationRequest(m.role, m.fields)
	if err != nil {
		return nil, err
	}
	m.submitError = ""
	m.status = StatusSubmitting
	return req, nil
}

func (m *Machine) back() error {
	if !m.editable() {
		return m.invalid("back")
	}
	m.fieldErrors = nil
	m.submitError = ""

	if m.stepIndex == 0 {
		m.role = ""
		m.fields = nil
		m.status = StatusRoleSelect
		return nil
	}
	m.stepIndex--
	m.status = StatusEditing
	return nil
}

func (m *Machine) submitResult(err error) error {
	if m.status != StatusSubmitting {
		return m.invalid("submit result")
	}
	if err != nil {
		m.status = StatusFailed
		m.submitError = SubmitErrorMessage
		return nil
	}
	m.fields = nil
	m.status = StatusSucceeded
	return nil
}

func (m *Machine) editable() bool {
	return m.status == StatusEditing || m.status == StatusFailed
}

func (m *Machine) steps() []Step {
	return Steps(m.role)
}

func (m *Machine) invalid(action string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, action, m.status)
}

func (m *Machine) Role() models.Role { return m.role }

func (m *Machine) Status() Status { return m.status }

// StepIndex is zero based; it is meaningless in StatusRoleSelect.
func (m *Machine) StepIndex() int { return m.stepIndex }

func (m *Machine) TotalSteps() int { return len(m.steps()) }

// CurrentStep returns false outside of a role's step track.
func (m *Machine) CurrentStep() (Step, bool) {
	steps := m.steps()
	if m.status == StatusRoleSelect || m.status == StatusSucceeded || len(steps) == 0 {
		return Step{}, false
	}
	return steps[m.stepIndex], true
}

func (m *Machine) Field(key string) string { return m.fields[key] }

func (m *Machine) Fields() map[string]string { return copyMap(m.fields) }

func (m *Machine) FieldErrors() map[string]string { return copyMap(m.fieldErrors) }

func (m *Machine) SubmitError() string { return m.submitError }

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
