package implementation

import (
	"context"
	"errors"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/mapper"
	"driven-coach-be/internal/model"
	"driven-coach-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationStateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationStateRepository(db *gorm.DB) contract.ConversationStateRepository {
	return &ConversationStateRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationStateRepositoryImpl) Upsert(ctx context.Context, state *entity.ConversationState) error {
	m, err := r.mapper.StateToModel(state)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "week_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "current_question", "questions", "updated_at"}),
	}).Create(m).Error
}

func (r *ConversationStateRepositoryImpl) FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) (*entity.ConversationState, error) {
	var m model.ConversationState
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND week_number = ?", sessionId, weekNumber).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.StateToEntity(&m)
}
