package contract

import (
	"context"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/repository/specification"
)

type WeekRepository interface {
	Create(ctx context.Context, week *entity.Week) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Week, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Week, error)
}
