package model

import (
	"github.com/google/uuid"
)

type PromptTemplate struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	QuestionId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_template_question_kind_scenario"`
	Kind       string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_template_question_kind_scenario"`
	Scenario   string    `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_template_question_kind_scenario"`
	Text       string    `gorm:"type:text;not null"`
}

func (PromptTemplate) TableName() string {
	return "prompt_templates"
}
