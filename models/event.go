package models

import "time"

const EventApplicationSubmitted = "application_submitted"

// ApplicationEvent is published once per appended row.
type ApplicationEvent struct {
	Event       string    `json:"event"`
	ID          string    `json:"id"`
	Role        Role      `json:"role"`
	Sheet       string    `json:"sheet"`
	Row         []string  `json:"row"`
	SubmittedAt time.Time `json:"submittedAt"`
}
