package contract

import (
	"context"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/repository/specification"
)

type PromptTemplateRepository interface {
	Create(ctx context.Context, template *entity.PromptTemplate) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromptTemplate, error)
}
