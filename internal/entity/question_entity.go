package entity

import (
	"time"

	"github.com/google/uuid"
)

// Question belongs to exactly one week. ResolvedScenarios lists the scenario
// labels that end the question's iteration loop immediately upon
// classification.
type Question struct {
	Id                 uuid.UUID
	WeekId             uuid.UUID
	Number             int
	Text               string
	MaxIterations      int
	RequiresValidation bool
	ResolvedScenarios  []string
	CreatedAt          time.Time
}
