// Package sheets persists application rows into named, header-delimited
// tables of a spreadsheet backend.
package sheets

import (
	"context"
	"fmt"

	"github.com/AESiR-0/mad-labs-2/models"
	"github.com/xuri/excelize/v2"
)

// Sheet is a fixed named table with an ordered header row.
type Sheet struct {
	Title   string
	Headers []string
}

// Range is the A1 column span covering every header, e.g. "Kids!A:G".
func (s Sheet) Range() string {
	last, err := excelize.ColumnNumberToName(len(s.Headers))
	if err != nil {
		last = "A"
	}
	return fmt.Sprintf("%s!A:%s", s.Title, last)
}

var (
	Kids = Sheet{
		Title:   "Kids",
		Headers: []string{"Name", "Email", "Phone", "Age", "City", "Curious", "Date Submitted"},
	}
	Parents = Sheet{
		Title: "Parents",
		Headers: []string{
			"Parent Name", "Parent Email", "Parent Phone", "Parent City",
			"Kid Name", "Kid Age", "Parent Curious", "Date Submitted",
		},
	}
	Mentors = Sheet{
		Title: "Mentors",
		Headers: []string{
			"Name", "Email", "Phone", "City", "Work", "Links",
			"Why Mentor", "Help Style", "Mad Fit", "Availability",
			"Additional", "Date Submitted",
		},
	}
)

// ForRole returns the sheet a role's submissions are appended to.
func ForRole(role models.Role) (Sheet, error) {
	switch role {
	case models.RoleKid:
		return Kids, nil
	case models.RoleParent:
		return Parents, nil
	case models.RoleMentor:
		return Mentors, nil
	}
	return Sheet{}, fmt.Errorf("no sheet for role %q", role)
}

// Store is an append-only table store.
//
// EnsureSheet creates the sheet and writes its header row when the sheet is
// missing, reporting whether it did so. Existing sheets are left untouched.
// Check and creation are not atomic: two callers racing on a missing sheet
// may both try to create it, and the loser gets an error from the backend.
type Store interface {
	EnsureSheet(ctx context.Context, sheet Sheet) (bool, error)
	AppendRow(ctx context.Context, sheet Sheet, row []string) error
}
