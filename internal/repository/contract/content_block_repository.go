package contract

import (
	"context"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/repository/specification"
)

type ContentBlockRepository interface {
	Create(ctx context.Context, block *entity.ContentBlock) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentBlock, error)
}
