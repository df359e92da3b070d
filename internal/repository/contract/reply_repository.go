package contract

import (
	"context"

	"driven-coach-be/internal/entity"
)

type ReplyRepository interface {
	// Upsert writes a reply keyed by (session, week, question, iteration).
	Upsert(ctx context.Context, reply *entity.ReplyRecord) error
	FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.ReplyRecord, error)
}
