package model

import (
	"time"

	"gorm.io/datatypes"
)

type ConversationState struct {
	SessionId       string         `gorm:"type:varchar(128);primaryKey"`
	Name            string         `gorm:"type:varchar(128)"`
	WeekNumber      int            `gorm:"primaryKey"`
	CurrentQuestion int            `gorm:"not null;default:1"`
	Questions       datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}

func (ConversationState) TableName() string {
	return "conversation_states"
}
