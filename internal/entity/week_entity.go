package entity

import (
	"time"

	"github.com/google/uuid"
)

// Week is an ordered container of questions. Immutable after authoring;
// read-only to the core.
type Week struct {
	Id             uuid.UUID
	Number         int
	Title          string
	WelcomeMessage string
	OutroMessage   string
	CreatedAt      time.Time
}
