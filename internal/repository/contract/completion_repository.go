package contract

import (
	"context"

	"driven-coach-be/internal/entity"
)

type CompletionRepository interface {
	// Record inserts a completion mark. Recording an already-completed
	// question updates its scenario/iterations in place; completions are
	// never unset.
	Record(ctx context.Context, completion *entity.CompletionRecord) error
	FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.CompletionRecord, error)
	FindBySession(ctx context.Context, sessionId string) ([]*entity.CompletionRecord, error)
}
