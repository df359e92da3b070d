package model

import (
	"time"

	"github.com/google/uuid"
)

type Week struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number         int       `gorm:"not null;uniqueIndex"`
	Title          string    `gorm:"type:varchar(255);not null"`
	WelcomeMessage string    `gorm:"type:text"`
	OutroMessage   string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (Week) TableName() string {
	return "weeks"
}
