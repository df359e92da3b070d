package dto

type WeekProgressView struct {
	WeekNumber         int    `json:"week_number"`
	Title              string `json:"title"`
	Unlocked           bool   `json:"unlocked"`
	Completed          bool   `json:"completed"`
	QuestionCount      int    `json:"question_count"`
	QuestionsCompleted []int  `json:"questions_completed"`
}

type ProgressResponse struct {
	SessionId string             `json:"session_id"`
	Weeks     []WeekProgressView `json:"weeks"`
}

type CheckUnlockRequest struct {
	SessionId  string `json:"session_id" validate:"required"`
	WeekNumber int    `json:"week_number" validate:"required,min=1"`
}

type CheckUnlockResponse struct {
	WeekNumber int  `json:"week_number"`
	Unlocked   bool `json:"unlocked"`
}
