package core

import (
	"fmt"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SessionID      ID
	SubscriptionID ID
	ReportID       ID
)

// String conversions for domain IDs
func (id SessionID) String() string      { return ID(id).String() }
func (id SubscriptionID) String() string { return ID(id).String() }
func (id ReportID) String() string       { return ID(id).String() }

// NewSessionID builds the zero-padded identifier used in the session log
func NewSessionID(seq int) SessionID {
	return SessionID(fmt.Sprintf("sess_%05d", seq))
}

// NewSubscriptionID builds the zero-padded identifier used in the subscription log
func NewSubscriptionID(seq int) SubscriptionID {
	return SubscriptionID(fmt.Sprintf("sub_%05d", seq))
}
