package entity

import (
	"time"

	"github.com/google/uuid"
)

// AnswerRecord is one user answer as received, keyed by iteration. Later
// iterations overwrite earlier ones so cross-question placeholders resolve
// to the user's latest wording.
type AnswerRecord struct {
	Id             uuid.UUID
	SessionId      string
	WeekNumber     int
	QuestionNumber int
	Iteration      int
	Scenario       string
	Text           string
	CreatedAt      time.Time
}

// ReplyRecord is the engine reply paired with an answer record, stamped with
// the classified scenario and the template kind that produced the text.
type ReplyRecord struct {
	Id             uuid.UUID
	SessionId      string
	WeekNumber     int
	QuestionNumber int
	Iteration      int
	Scenario       string
	TemplateKind   string
	Text           string
	CreatedAt      time.Time
}

// CompletionRecord marks a question finished for a session. At most one per
// (session, week, question); once written it is never deleted.
type CompletionRecord struct {
	Id             uuid.UUID
	SessionId      string
	WeekNumber     int
	QuestionNumber int
	Scenario       string
	Iterations     int
	CreatedAt      time.Time
}
