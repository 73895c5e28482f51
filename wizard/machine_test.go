package wizard

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/AESiR-0/mad-labs-2/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validValue(f Field) string {
	switch f.Rule {
	case RuleEmail:
		return "someone@example.com"
	case RulePhone:
		return "9876543210"
	}
	return "value for " + f.Key
}

func dispatch(t *testing.T, m *Machine, ev Event) *models.ApplicationRequest {
	t.Helper()
	req, err := m.Dispatch(ev)
	require.NoError(t, err)
	return req
}

func fillStep(t *testing.T, m *Machine, skip string) {
	t.Helper()
	step, ok := m.CurrentStep()
	require.True(t, ok)
	for _, f := range step.Fields {
		if f.Key == skip {
			continue
		}
		dispatch(t, m, SetField{Key: f.Key, Value: validValue(f)})
	}
}

// advanceTo selects role and completes steps until stepIndex == target.
func advanceTo(t *testing.T, role models.Role, target int) *Machine {
	t.Helper()
	m := New()
	dispatch(t, m, SelectRole{Role: role})
	for m.StepIndex() < target {
		fillStep(t, m, "")
		dispatch(t, m, Next{})
	}
	require.Equal(t, target, m.StepIndex())
	return m
}

func TestMachine_RequiredFieldBlocksEveryStep(t *testing.T) {
	for _, role := range models.Roles {
		for i, step := range Steps(role) {
			for _, field := range step.Fields {
				if field.Optional {
					continue
				}
				t.Run(string(role)+"/"+step.Key+"/"+field.Key, func(t *testing.T) {
					m := advanceTo(t, role, i)
					fillStep(t, m, field.Key)
					before := m.Fields()

					req := dispatch(t, m, Next{})

					assert.Nil(t, req)
					assert.Equal(t, i, m.StepIndex())
					assert.Equal(t, StatusEditing, m.Status())
					assert.NotEmpty(t, m.FieldErrors()[field.Key])
					assert.Equal(t, before, m.Fields())
				})
			}
		}
	}
}

func TestMachine_CompletingTrackEmitsOnlyRoleKey(t *testing.T) {
	for _, role := range models.Roles {
		t.Run(string(role), func(t *testing.T) {
			steps := Steps(role)
			m := advanceTo(t, role, len(steps)-1)
			fillStep(t, m, "")

			req := dispatch(t, m, Next{})
			require.NotNil(t, req)
			assert.Equal(t, StatusSubmitting, m.Status())

			raw, err := json.Marshal(req)
			require.NoError(t, err)
			var body map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Len(t, body, 1)
			assert.Contains(t, body, role.DataKey())
		})
	}
}

func TestMachine_BackFromFirstStepClearsRole(t *testing.T) {
	for _, role := range []models.Role{models.RoleKid, models.RoleParent, models.RoleMentor} {
		t.Run(string(role), func(t *testing.T) {
			m := New()
			dispatch(t, m, SelectRole{Role: role})
			fillStep(t, m, "")
			require.NotEmpty(t, m.Fields())

			dispatch(t, m, Back{})
			assert.Equal(t, StatusRoleSelect, m.Status())
			assert.Equal(t, models.Role(""), m.Role())
			assert.Empty(t, m.Fields())

			other := models.RoleMentor
			if role == models.RoleMentor {
				other = models.RoleKid
			}
			dispatch(t, m, SelectRole{Role: other})
			assert.Equal(t, 0, m.StepIndex())
			assert.Equal(t, other, m.Role())
			assert.Empty(t, m.Fields())
		})
	}
}

func TestMachine_BackKeepsData(t *testing.T) {
	m := advanceTo(t, models.RoleKid, 2)
	name := m.Field("name")
	require.NotEmpty(t, name)

	dispatch(t, m, Back{})
	assert.Equal(t, 1, m.StepIndex())
	assert.Equal(t, name, m.Field("name"))
}

func TestMachine_SubmitFailureKeepsDataAndAllowsResubmit(t *testing.T) {
	m := advanceTo(t, models.RoleParent, 4)
	fillStep(t, m, "")
	require.NotNil(t, dispatch(t, m, Next{}))

	_, err := m.Dispatch(Next{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Dispatch(Back{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	dispatch(t, m, SubmitResult{Err: errors.New("network down")})
	assert.Equal(t, StatusFailed, m.Status())
	assert.Equal(t, SubmitErrorMessage, m.SubmitError())
	assert.Equal(t, 4, m.StepIndex())
	assert.NotEmpty(t, m.Field("parentName"))

	req := dispatch(t, m, Next{})
	require.NotNil(t, req)
	require.NotNil(t, req.ParentData)
	assert.Equal(t, "value for parentName", req.ParentData.ParentName)
	assert.Empty(t, m.SubmitError())

	dispatch(t, m, SubmitResult{})
	assert.Equal(t, StatusSucceeded, m.Status())
	assert.Empty(t, m.Fields())

	_, err = m.Dispatch(Back{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, ok := m.CurrentStep()
	assert.False(t, ok)
}

func TestMachine_InvalidTransitions(t *testing.T) {
	m := New()

	_, err := m.Dispatch(Next{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Dispatch(Back{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Dispatch(SubmitResult{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Dispatch(SetField{Key: "name", Value: "Ava"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Dispatch(SelectRole{Role: "teacher"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	dispatch(t, m, SelectRole{Role: models.RoleKid})
	_, err = m.Dispatch(SelectRole{Role: models.RoleParent})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestMachine_SetFieldOutsideCurrentStep(t *testing.T) {
	m := New()
	dispatch(t, m, SelectRole{Role: models.RoleKid})

	_, err := m.Dispatch(SetField{Key: "email", Value: "a@x.com"})
	assert.ErrorIs(t, err, ErrUnknownField)
	_, err = m.Dispatch(SetField{Key: "parentName", Value: "Raj"})
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.Empty(t, m.Fields())
}

func TestMachine_ErrorsClearOnValidNext(t *testing.T) {
	m := New()
	dispatch(t, m, SelectRole{Role: models.RoleKid})
	dispatch(t, m, Next{})
	require.Equal(t, "Name is required", m.FieldErrors()["name"])

	dispatch(t, m, SetField{Key: "name", Value: "Ava"})
	dispatch(t, m, Next{})
	assert.Empty(t, m.FieldErrors())
	assert.Equal(t, 1, m.StepIndex())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "role_select", StatusRoleSelect.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "status(42)", Status(42).String())
}

func TestStepTracks(t *testing.T) {
	assert.Len(t, Steps(models.RoleKid), 5)
	assert.Len(t, Steps(models.RoleParent), 5)
	assert.Len(t, Steps(models.RoleMentor), 5)
	assert.Nil(t, Steps("teacher"))
}
