package contract

import (
	"context"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/repository/specification"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Question, error)
}
