package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Question struct {
	Id                 uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WeekId             uuid.UUID                   `gorm:"type:uuid;not null;index;uniqueIndex:idx_question_week_number"`
	Number             int                         `gorm:"not null;uniqueIndex:idx_question_week_number"`
	Text               string                      `gorm:"type:text;not null"`
	MaxIterations      int                         `gorm:"not null;default:2"`
	RequiresValidation bool                        `gorm:"not null;default:false"`
	ResolvedScenarios  datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt          time.Time                   `gorm:"autoCreateTime"`
}

func (Question) TableName() string {
	return "questions"
}
