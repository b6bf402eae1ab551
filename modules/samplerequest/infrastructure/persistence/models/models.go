package models

import "time"

type SampleRequest struct {
	ID                string
	Title             string
	Notes             string
	RequesterID       string
	RequesterName     string
	FulfillmentMethod string
	Status            string
	RequiredBy        time.Time
	Items             []byte
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type DeadlineChange struct {
	ID            string
	RequestID     string
	OldDeadline   time.Time
	NewDeadline   time.Time
	Reason        string
	ChangedByName string
	ChangedAt     time.Time
}
