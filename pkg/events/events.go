// Package events defines the domain events the coaching engine emits after a
// turn commits. Consumers live outside the atomic turn boundary.
package events

import "time"

// Event is anything publishable to the event bus.
type Event interface {
	EventType() string
	Payload() interface{}
}

// TurnCommitted fires after every successfully persisted turn.
type TurnCommitted struct {
	SessionID      string    `json:"session_id"`
	WeekNumber     int       `json:"week_number"`
	QuestionNumber int       `json:"question_number"`
	Iteration      int       `json:"iteration"`
	Scenario       string    `json:"scenario"`
	Completed      bool      `json:"completed"`
	CommittedAt    time.Time `json:"committed_at"`
}

func (e TurnCommitted) EventType() string    { return "turn.committed" }
func (e TurnCommitted) Payload() interface{} { return e }

// WeekCompleted fires once when the last question of a week completes.
type WeekCompleted struct {
	SessionID   string    `json:"session_id"`
	WeekNumber  int       `json:"week_number"`
	CompletedAt time.Time `json:"completed_at"`
}

func (e WeekCompleted) EventType() string    { return "week.completed" }
func (e WeekCompleted) Payload() interface{} { return e }
