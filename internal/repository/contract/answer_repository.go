package contract

import (
	"context"

	"driven-coach-be/internal/entity"
)

type AnswerRepository interface {
	// Upsert writes an answer keyed by (session, week, question, iteration);
	// a replayed turn overwrites in place.
	Upsert(ctx context.Context, answer *entity.AnswerRecord) error
	// FindLatest returns the highest-iteration answer for a question, nil
	// when none exists.
	FindLatest(ctx context.Context, sessionId string, weekNumber, questionNumber int) (*entity.AnswerRecord, error)
	FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.AnswerRecord, error)
}
