package model

import (
	"time"

	"github.com/google/uuid"
)

type ReplyRecord struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      string    `gorm:"type:varchar(128);not null;index;uniqueIndex:idx_reply_turn"`
	WeekNumber     int       `gorm:"not null;uniqueIndex:idx_reply_turn"`
	QuestionNumber int       `gorm:"not null;uniqueIndex:idx_reply_turn"`
	Iteration      int       `gorm:"not null;uniqueIndex:idx_reply_turn"`
	Scenario       string    `gorm:"type:varchar(64);not null;default:''"`
	TemplateKind   string    `gorm:"type:varchar(32);not null;default:''"`
	Text           string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (ReplyRecord) TableName() string {
	return "reply_records"
}
