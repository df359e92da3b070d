package model

import (
	"github.com/google/uuid"
)

type ContentBlock struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WeekId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_block_week_name"`
	Name   string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_block_week_name"`
	Text   string    `gorm:"type:text;not null"`
}

func (ContentBlock) TableName() string {
	return "content_blocks"
}
