package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserPreferences holds travel preferences learned from conversation. Fields
// are filled once and kept: extraction merges into missing fields only.
type UserPreferences struct {
	Budget               string   `json:"budget,omitempty"`
	TravelStyle          string   `json:"travel_style,omitempty"`
	Interests            []string `json:"interests,omitempty"`
	PreviousDestinations []string `json:"previous_destinations,omitempty"`
}

type User struct {
	Id          uuid.UUID
	Email       string
	FullName    string
	Preferences UserPreferences
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
