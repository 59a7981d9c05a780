package models

import "time"

// Submission statuses move forward only; there is no workflow engine.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusAccepted = "accepted"
	SubmissionStatusDeclined = "declined"
)

// Submission is a filmmaker's entry in the editorial review pipeline.
type Submission struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filmmaker   string    `json:"filmmaker"`
	Email       string    `json:"email"`
	ScreenerURL string    `json:"screenerUrl,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
