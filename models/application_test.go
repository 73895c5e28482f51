package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationRequest_Empty(t *testing.T) {
	var req ApplicationRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.Empty())
	assert.Empty(t, req.Entries())

	var nilReq *ApplicationRequest
	assert.True(t, nilReq.Empty())
}

func TestApplicationRequest_EntriesOrder(t *testing.T) {
	body := `{
		"mentorData": {"name": "M"},
		"parentData": {"parentName": "P"},
		"kidData": {"name": "K"}
	}`
	var req ApplicationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	entries := req.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, RoleKid, entries[0].Role)
	assert.Equal(t, RoleParent, entries[1].Role)
	assert.Equal(t, RoleMentor, entries[2].Role)
	assert.Len(t, entries[2].Values, 11)
}

func TestKidFields_ValuesColumnOrder(t *testing.T) {
	k := KidFields{Name: "Ava", Email: "a@x.com", Phone: "1234567", Age: "12", City: "Pune", Curious: "robots"}
	assert.Equal(t, []string{"Ava", "a@x.com", "1234567", "12", "Pune", "robots"}, k.Values())
}

func TestParentFields_ValuesColumnOrder(t *testing.T) {
	p := ParentFields{
		ParentName: "Raj", ParentEmail: "r@x.com", ParentPhone: "9876543",
		ParentCity: "Pune", KidName: "Ava", KidAge: "12", ParentCurious: "space",
	}
	assert.Equal(t, []string{"Raj", "r@x.com", "9876543", "Pune", "Ava", "12", "space"}, p.Values())
}

func TestNewApplicationRequest_SingleRoleKey(t *testing.T) {
	req, err := NewApplicationRequest(RoleParent, map[string]string{"parentName": "Raj", "kidName": "Ava"})
	require.NoError(t, err)

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &keys))
	assert.Len(t, keys, 1)
	assert.Contains(t, keys, "parentData")
	assert.Equal(t, "Raj", req.ParentData.ParentName)
	assert.Equal(t, "Ava", req.ParentData.KidName)

	_, err = NewApplicationRequest(Role("teacher"), nil)
	assert.Error(t, err)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("mentor")
	require.NoError(t, err)
	assert.Equal(t, RoleMentor, r)
	assert.Equal(t, "mentorData", r.DataKey())

	_, err = ParseRole("admin")
	assert.Error(t, err)
}
