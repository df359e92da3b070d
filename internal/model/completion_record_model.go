package model

import (
	"time"

	"github.com/google/uuid"
)

type CompletionRecord struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      string    `gorm:"type:varchar(128);not null;index;uniqueIndex:idx_completion_question"`
	WeekNumber     int       `gorm:"not null;uniqueIndex:idx_completion_question"`
	QuestionNumber int       `gorm:"not null;uniqueIndex:idx_completion_question"`
	Scenario       string    `gorm:"type:varchar(64)"`
	Iterations     int       `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (CompletionRecord) TableName() string {
	return "completion_records"
}
