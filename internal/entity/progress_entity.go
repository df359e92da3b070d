package entity

// WeekProgress is one week's standing for a session, derived from the
// completion ledger.
type WeekProgress struct {
	WeekNumber         int
	Title              string
	Unlocked           bool
	Completed          bool
	QuestionCount      int
	QuestionsCompleted []int
}

// ProgressSummary is the full per-session programme view.
type ProgressSummary struct {
	SessionId string
	Weeks     []WeekProgress
}
