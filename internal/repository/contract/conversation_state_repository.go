package contract

import (
	"context"

	"driven-coach-be/internal/entity"
)

type ConversationStateRepository interface {
	// Upsert writes the whole state row, inserting on first touch.
	Upsert(ctx context.Context, state *entity.ConversationState) error
	// FindBySessionAndWeek returns nil without error when the session has
	// not started the week.
	FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) (*entity.ConversationState, error)
}
