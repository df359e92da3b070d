package implementation

import (
	"context"
	"errors"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/mapper"
	"driven-coach-be/internal/model"
	"driven-coach-be/internal/repository/contract"
	"driven-coach-be/internal/repository/specification"

	"gorm.io/gorm"
)

type WeekRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ContentMapper
}

func NewWeekRepository(db *gorm.DB) contract.WeekRepository {
	return &WeekRepositoryImpl{
		db:     db,
		mapper: mapper.NewContentMapper(),
	}
}

func (r *WeekRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WeekRepositoryImpl) Create(ctx context.Context, week *entity.Week) error {
	m := &model.Week{
		Id:             week.Id,
		Number:         week.Number,
		Title:          week.Title,
		WelcomeMessage: week.WelcomeMessage,
		OutroMessage:   week.OutroMessage,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*week = *r.mapper.WeekToEntity(m)
	return nil
}

func (r *WeekRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Week, error) {
	var m model.Week
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WeekToEntity(&m), nil
}

func (r *WeekRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Week, error) {
	var models []*model.Week
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	weeks := make([]*entity.Week, len(models))
	for i, m := range models {
		weeks[i] = r.mapper.WeekToEntity(m)
	}
	return weeks, nil
}
