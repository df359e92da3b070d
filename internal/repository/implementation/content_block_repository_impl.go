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

type ContentBlockRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewContentBlockRepository(db *gorm.DB) contract.ContentBlockRepository {
	return &ContentBlockRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *ContentBlockRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ContentBlockRepositoryImpl) Create(ctx context.Context, block *entity.ContentBlock) error {
	m := &model.ContentBlock{
		Id:     block.Id,
		WeekId: block.WeekId,
		Name:   block.Name,
		Text:   block.Text,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*block = *r.mapper.BlockToEntity(m)
	return nil
}

func (r *ContentBlockRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentBlock, error) {
	var models []*model.ContentBlock
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	blocks := make([]*entity.ContentBlock, len(models))
	for i, m := range models {
		blocks[i] = r.mapper.BlockToEntity(m)
	}
	return blocks, nil
}
