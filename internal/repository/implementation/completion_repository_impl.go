package implementation

import (
	"context"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/mapper"
	"driven-coach-be/internal/model"
	"driven-coach-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewCompletionRepository(db *gorm.DB) contract.CompletionRepository {
	return &CompletionRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *CompletionRepositoryImpl) Record(ctx context.Context, completion *entity.CompletionRecord) error {
	m := r.mapper.CompletionToModel(completion)
	// A second mark for the same question is an idempotent update; the row
	// itself is never deleted, so completion stays monotonic.
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "week_number"}, {Name: "question_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"scenario", "iterations"}),
	}).Create(m).Error; err != nil {
		return err
	}
	*completion = *r.mapper.CompletionToEntity(m)
	return nil
}

func (r *CompletionRepositoryImpl) FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.CompletionRecord, error) {
	var models []*model.CompletionRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND week_number = ?", sessionId, weekNumber).
		Order("question_number ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.CompletionsToEntities(models), nil
}

func (r *CompletionRepositoryImpl) FindBySession(ctx context.Context, sessionId string) ([]*entity.CompletionRecord, error) {
	var models []*model.CompletionRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("week_number ASC, question_number ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.CompletionsToEntities(models), nil
}
