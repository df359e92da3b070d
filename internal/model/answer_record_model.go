package model

import (
	"time"

	"github.com/google/uuid"
)

type AnswerRecord struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      string    `gorm:"type:varchar(128);not null;index;uniqueIndex:idx_answer_turn"`
	WeekNumber     int       `gorm:"not null;uniqueIndex:idx_answer_turn"`
	QuestionNumber int       `gorm:"not null;uniqueIndex:idx_answer_turn"`
	Iteration      int       `gorm:"not null;uniqueIndex:idx_answer_turn"`
	Scenario       string    `gorm:"type:varchar(64)"`
	Text           string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (AnswerRecord) TableName() string {
	return "answer_records"
}
