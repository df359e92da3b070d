package implementation

import (
	"context"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/mapper"
	"driven-coach-be/internal/model"
	"driven-coach-be/internal/repository/contract"
	"driven-coach-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PromptTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewPromptTemplateRepository(db *gorm.DB) contract.PromptTemplateRepository {
	return &PromptTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *PromptTemplateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PromptTemplateRepositoryImpl) Create(ctx context.Context, template *entity.PromptTemplate) error {
	m := &model.PromptTemplate{
		Id:         template.Id,
		QuestionId: template.QuestionId,
		Kind:       template.Kind,
		Scenario:   template.Scenario,
		Text:       template.Text,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(m)
	return nil
}

func (r *PromptTemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromptTemplate, error) {
	var models []*model.PromptTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	templates := make([]*entity.PromptTemplate, len(models))
	for i, m := range models {
		templates[i] = r.mapper.TemplateToEntity(m)
	}
	return templates, nil
}
