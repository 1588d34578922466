// Package models defines claim and policy records for ClaimPilot.
package models

import "time"

// Policy is a demo policy record attached to a user account.
type Policy struct {
	PolicyNumber string `json:"policyNumber"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Premium      string `json:"premium"`
	Coverage     string `json:"coverage"`
	Vehicle      string `json:"vehicle,omitempty"`
	Property     string `json:"property,omitempty"`
	ExpiryDate   string `json:"expiryDate"`
}

// Identity names the submitter of a claim.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// User is a demo account with credentials and policies.
type User struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Policies []Policy `json:"policies"`
}

// ClaimRecord is the flattened answer map of one completed intake, tagged with
// the submitter and a timestamp. One record per submitter; a later submission
// overwrites the previous one.
type ClaimRecord struct {
	Submitter   Identity          `json:"user"`
	SubmittedAt time.Time         `json:"submittedAt"`
	ClaimData   map[string]string `json:"claimData"`
}
