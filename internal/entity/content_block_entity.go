package entity

import (
	"github.com/google/uuid"
)

// ContentBlock is a named reusable text fragment, referenced by name from
// inside a prompt template's placeholders.
type ContentBlock struct {
	Id     uuid.UUID
	WeekId uuid.UUID
	Name   string
	Text   string
}
