package service

import "errors"

var (
	// ErrTurnInProgress is returned when a session submits a new answer
	// before its previous turn finished.
	ErrTurnInProgress = errors.New("turn already in progress for session")

	// ErrWeekLocked is returned when a session targets a week whose
	// predecessor is not complete.
	ErrWeekLocked = errors.New("week is locked until the previous week is complete")

	// ErrWeekNotFound is returned for a week number with no authored content.
	ErrWeekNotFound = errors.New("week not found")

	// ErrUnknownQuestion is returned when the question number does not exist
	// in the week.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrQuestionNotCurrent is returned when the submitted question is not
	// the session's current one and is not already complete.
	ErrQuestionNotCurrent = errors.New("question is not the session's current question")

	// ErrPromptNotConfigured is returned when a question lacks the template
	// a turn needs (classifier or the classified scenario's response).
	ErrPromptNotConfigured = errors.New("prompt template not configured")

	// ErrCompletionUnavailable is returned when the language model cannot
	// be reached or times out.
	ErrCompletionUnavailable = errors.New("completion provider unavailable")
)
