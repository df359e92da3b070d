package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByWeekNumber filters content by week number
type ByWeekNumber struct {
	Number int
}

func (s ByWeekNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("number = ?", s.Number)
}

// ByWeekId filters questions and blocks by their owning week
type ByWeekId struct {
	WeekId uuid.UUID
}

func (s ByWeekId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("week_id = ?", s.WeekId)
}

// ByQuestionIds filters prompt templates by a set of questions
type ByQuestionIds struct {
	QuestionIds []uuid.UUID
}

func (s ByQuestionIds) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("question_id IN ?", s.QuestionIds)
}
