package models

import "fmt"

// Role selects the field set and the sheet a submission targets.
type Role string

const (
	RoleKid    Role = "kid"
	RoleParent Role = "parent"
	RoleMentor Role = "mentor"
)

// Roles in the order submissions are written.
var Roles = []Role{RoleKid, RoleParent, RoleMentor}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleKid, RoleParent, RoleMentor:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// DataKey is the request body key carrying this role's fields.
func (r Role) DataKey() string {
	return string(r) + "Data"
}

type KidFields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Age     string `json:"age"`
	City    string `json:"city"`
	Curious string `json:"curious"`
}

// Values returns the fields in sheet column order.
func (k KidFields) Values() []string {
	return []string{k.Name, k.Email, k.Phone, k.Age, k.City, k.Curious}
}

type ParentFields struct {
	ParentName    string `json:"parentName"`
	ParentEmail   string `json:"parentEmail"`
	ParentPhone   string `json:"parentPhone"`
	ParentCity    string `json:"parentCity"`
	KidName       string `json:"kidName"`
	KidAge        string `json:"kidAge"`
	ParentCurious string `json:"parentCurious"`
}

// Values returns the fields in sheet column order.
func (p ParentFields) Values() []string {
	return []string{p.ParentName, p.ParentEmail, p.ParentPhone, p.ParentCity, p.KidName, p.KidAge, p.ParentCurious}
}

type MentorFields struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	Work         string `json:"work"`
	Links        string `json:"links"`
	WhyMentor    string `json:"whyMentor"`
	HelpStyle    string `json:"helpStyle"`
	MadFit       string `json:"madFit"`
	Availability string `json:"availability"`
	Additional   string `json:"additional"`
}

// Values returns the fields in sheet column order.
func (m MentorFields) Values() []string {
	return []string{
		m.Name, m.Email, m.Phone, m.City, m.Work, m.Links,
		m.WhyMentor, m.HelpStyle, m.MadFit, m.Availability, m.Additional,
	}
}

// ApplicationRequest is the body of POST /api/submit-application. Every
// key is optional; at least one must be present.
type ApplicationRequest struct {
	KidData    *KidFields    `json:"kidData,omitempty"`
	ParentData *ParentFields `json:"parentData,omitempty"`
	MentorData *MentorFields `json:"mentorData,omitempty"`
}

// Empty reports whether no role data is present.
func (r *ApplicationRequest) Empty() bool {
	return r == nil || (r.KidData == nil && r.ParentData == nil && r.MentorData == nil)
}

// Entries returns the present roles with their values, in Roles order.
func (r *ApplicationRequest) Entries() []Entry {
	if r == nil {
		return nil
	}
	var out []Entry
	if r.KidData != nil {
		out = append(out, Entry{Role: RoleKid, Values: r.KidData.Values()})
	}
	if r.ParentData != nil {
		out = append(out, Entry{Role: RoleParent, Values: r.ParentData.Values()})
	}
	if r.MentorData != nil {
		out = append(out, Entry{Role: RoleMentor, Values: r.MentorData.Values()})
	}
	return out
}

// Entry is one role's record flattened to column order.
type Entry struct {
	Role   Role
	Values []string
}

// NewApplicationRequest builds a single-role request from a flat field map
// keyed by the JSON field names.
func NewApplicationRequest(role Role, fields map[string]string) (*ApplicationRequest, error) {
	switch role {
	case RoleKid:
		return &ApplicationRequest{KidData: &KidFields{
			Name:    fields["name"],
			Email:   fields["email"],
			Phone:   fields["phone"],
			Age:     fields["age"],
			City:    fields["city"],
			Curious: fields["curious"],
		}}, nil
	case RoleParent:
		return &ApplicationRequest{ParentData: &ParentFields{
			ParentName:    fields["parentName"],
			ParentEmail:   fields["parentEmail"],
			ParentPhone:   fields["parentPhone"],
			ParentCity:    fields["parentCity"],
			KidName:       fields["kidName"],
			KidAge:        fields["kidAge"],
			ParentCurious: fields["parentCurious"],
		}}, nil
	case RoleMentor:
		return &ApplicationRequest{MentorData: &MentorFields{
			Name:         fields["name"],
			Email:        fields["email"],
			Phone:        fields["phone"],
			City:         fields["city"],
			Work:         fields["work"],
			Links:        fields["links"],
			WhyMentor:    fields["whyMentor"],
			HelpStyle:    fields["helpStyle"],
			MadFit:       fields["madFit"],
			Availability: fields["availability"],
			Additional:   fields["additional"],
		}}, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}
