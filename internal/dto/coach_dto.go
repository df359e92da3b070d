package dto

type StartWeekRequest struct {
	SessionId   string `json:"session_id" validate:"required"`
	WeekNumber  int    `json:"week_number" validate:"required,min=1"`
	DisplayName string `json:"display_name"`
}

type QuestionView struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
	Intro  string `json:"intro,omitempty"`
}

type StartWeekResponse struct {
	WeekNumber     int           `json:"week_number"`
	Title          string        `json:"title"`
	WelcomeMessage string        `json:"welcome_message"`
	Question       *QuestionView `json:"question"`
}

type SubmitAnswerRequest struct {
	SessionId      string `json:"session_id" validate:"required"`
	WeekNumber     int    `json:"week_number" validate:"required,min=1"`
	QuestionNumber int    `json:"question_number" validate:"required,min=1"`
	Answer         string `json:"answer" validate:"required"`
}

type SubmitAnswerResponse struct {
	ReplyText    string        `json:"reply_text"`
	IsComplete   bool          `json:"is_complete"`
	MoveToNext   bool          `json:"move_to_next"`
	Iteration    int           `json:"iteration"`
	Scenario     string        `json:"scenario,omitempty"`
	NextQuestion *QuestionView `json:"next_question,omitempty"`
	OutroMessage string        `json:"outro_message,omitempty"`
}

type NextQuestionResponse struct {
	Question     *QuestionView `json:"question,omitempty"`
	WeekComplete bool          `json:"week_complete"`
	OutroMessage string        `json:"outro_message,omitempty"`
}
