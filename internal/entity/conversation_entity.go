package entity

import (
	"time"
)

// QuestionState is the per-question slice of a session's conversation state.
// Answers and Replies grow in lockstep, one entry per committed turn, so
// len(Answers) == len(Replies) == Iteration for every visited question.
type QuestionState struct {
	Answers   []string `json:"answers,omitempty"`
	Replies   []string `json:"replies,omitempty"`
	Iteration int      `json:"iteration"`
	Completed bool     `json:"completed"`
	Scenario  string   `json:"scenario,omitempty"`
}

// ConversationState is the mutable cursor of one session inside one week.
// It is derived from the ledger and rebuildable from it; the ledger wins on
// disagreement.
type ConversationState struct {
	SessionId       string
	Name            string
	WeekNumber      int
	CurrentQuestion int
	Questions       map[int]QuestionState
	UpdatedAt       time.Time
}

// Question returns the state slice for a question number, zero-valued when
// the question has not been touched yet.
func (s *ConversationState) Question(number int) QuestionState {
	if s.Questions == nil {
		return QuestionState{}
	}
	return s.Questions[number]
}

// SetQuestion stores the state slice for a question number.
func (s *ConversationState) SetQuestion(number int, qs QuestionState) {
	if s.Questions == nil {
		s.Questions = make(map[int]QuestionState)
	}
	s.Questions[number] = qs
}

// CompletedCount reports how many questions in the week are marked complete.
func (s *ConversationState) CompletedCount() int {
	count := 0
	for _, qs := range s.Questions {
		if qs.Completed {
			count++
		}
	}
	return count
}
