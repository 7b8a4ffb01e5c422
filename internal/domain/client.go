package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Client field limits, counted in characters after trimming.
const (
	MaxNameLength      = 120
	MaxReferenceLength = 250
)

var (
	// ErrEmptyName indicates that the client name is empty after trimming.
	ErrEmptyName = newError(ErrValidation, "client name must not be empty")
	// ErrNameTooLong indicates that the trimmed client name exceeds MaxNameLength.
	ErrNameTooLong = newError(ErrValidation, "client name must be at most 120 characters long")
	// ErrReferenceTooLong indicates that the trimmed reference exceeds MaxReferenceLength.
	ErrReferenceTooLong = newError(ErrValidation, "client reference must be at most 250 characters long")
	// ErrClientNotFound indicates that the client is not found.
	ErrClientNotFound = newError(ErrNotFound, "client not found")
)

// Client holds the profile of a person tracked for debt purposes.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Reference    string    `json:"reference"`
	RegisteredAt time.Time `json:"registered_at"`
}

// ClientDraft is the input data to register or update a client.
type ClientDraft struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

// Normalize trims the draft fields and validates their lengths.
func (d ClientDraft) Normalize() (ClientDraft, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Reference = strings.TrimSpace(d.Reference)

	if d.Name == "" {
		return d, ErrEmptyName
	}

	if utf8.RuneCountInString(d.Name) > MaxNameLength {
		return d, ErrNameTooLong
	}

	if utf8.RuneCountInString(d.Reference) > MaxReferenceLength {
		return d, ErrReferenceTooLong
	}

	return d, nil
}

// CreateClientParams is the input data to store a new client.
type CreateClientParams struct {
	Name         string
	Reference    string
	RegisteredAt time.Time
}

// UpdateClientParams is the input data to change the mutable client fields.
type UpdateClientParams struct {
	ID        string
	Name      string
	Reference string
}
