package wizard

import "github.com/AESiR-0/mad-labs-2/models"

// Rule is an extra format check applied to a non-empty value.
type Rule int

const (
	RuleNone Rule = iota
	RuleEmail
	RulePhone
)

// MinPhoneLength is the shortest accepted phone number.
const MinPhoneLength = 7

// Field is one input of a step. Message is shown when the field is
// missing or, for fields with a Rule, malformed.
type Field struct {
	Key      string
	Label    string
	Optional bool
	Rule     Rule
	Message  string
}

type Step struct {
	Key    string
	Title  string
	Fields []Field
}

var kidSteps = []Step{
	{Key: "name", Title: "What's your name?", Fields: []Field{
		{Key: "name", Label: "Name", Message: "Name is required"},
	}},
	{Key: "age", Title: "How old are you?", Fields: []Field{
		{Key: "age", Label: "Age", Message: "Age is required"},
	}},
	{Key: "contact", Title: "How do we contact you?", Fields: []Field{
		{Key: "email", Label: "Email", Rule: RuleEmail, Message: "Invalid email"},
		{Key: "phone", Label: "Phone", Rule: RulePhone, Message: "Phone required"},
	}},
	{Key: "city", Title: "Where do you live?", Fields: []Field{
		{Key: "city", Label: "City", Message: "City is required"},
	}},
	{Key: "curious", Title: "What are you most curious about?", Fields: []Field{
		{Key: "curious", Label: "Curious about", Message: "Required"},
	}},
}

var parentSteps = []Step{
	{Key: "name", Title: "Your name", Fields: []Field{
		{Key: "parentName", Label: "Name", Message: "Name is required"},
	}},
	{Key: "contact", Title: "Your contact", Fields: []Field{
		{Key: "parentEmail", Label: "Email", Rule: RuleEmail, Message: "Invalid email"},
		{Key: "parentPhone", Label: "Phone", Rule: RulePhone, Message: "Phone required"},
	}},
	{Key: "city", Title: "Your city", Fields: []Field{
		{Key: "parentCity", Label: "City", Message: "City is required"},
	}},
	{Key: "kid", Title: "Your kid's name & age", Fields: []Field{
		{Key: "kidName", Label: "Kid's name", Message: "Required"},
		{Key: "kidAge", Label: "Kid's age", Message: "Required"},
	}},
	{Key: "curious", Title: "What do you think your child is deeply curious about?", Fields: []Field{
		{Key: "parentCurious", Label: "Curious about", Message: "Required"},
	}},
}

var mentorSteps = []Step{
	{Key: "basics", Title: "Basic info", Fields: []Field{
		{Key: "name", Label: "Name", Message: "Name is required"},
		{Key: "email", Label: "Email", Rule: RuleEmail, Message: "Invalid email"},
		{Key: "phone", Label: "Phone number", Rule: RulePhone, Message: "Phone required"},
		{Key: "city", Label: "City", Message: "City is required"},
	}},
	{Key: "work", Title: "Your work", Fields: []Field{
		{Key: "work", Label: "What do you build or do best?", Message: "Required"},
		{Key: "links", Label: "Drop 1-2 links to work you're proud of", Optional: true},
	}},
	{Key: "fit", Title: "Mentorship fit", Fields: []Field{
		{Key: "whyMentor", Label: "Why do you want to mentor at Mad Labs?", Message: "Required"},
		{Key: "helpStyle", Label: "How do you usually help someone when they're stuck?", Message: "Required"},
	}},
	{Key: "madFit", Title: "Mad fit", Fields: []Field{
		{Key: "madFit", Label: `If a 13-year-old told you they want to "start a business to save trees," what would you say?`, Message: "Required"},
	}},
	{Key: "logistics", Title: "Logistics", Fields: []Field{
		{Key: "availability", Label: "Availability", Message: "Required"},
		{Key: "additional", Label: "Anything else we should know?", Optional: true},
	}},
}

// Steps returns the step track for a role, or nil for an unknown role.
func Steps(role models.Role) []Step {
	switch role {
	case models.RoleKid:
		return kidSteps
	case models.RoleParent:
		return parentSteps
	case models.RoleMentor:
		return mentorSteps
	}
	return nil
}

func (s Step) hasField(key string) bool {
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}
