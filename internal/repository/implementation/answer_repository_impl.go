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

type AnswerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewAnswerRepository(db *gorm.DB) contract.AnswerRepository {
	return &AnswerRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *AnswerRepositoryImpl) Upsert(ctx context.Context, answer *entity.AnswerRecord) error {
	m := r.mapper.AnswerToModel(answer)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "week_number"}, {Name: "question_number"}, {Name: "iteration"}},
		DoUpdates: clause.AssignmentColumns([]string{"scenario", "text"}),
	}).Create(m).Error; err != nil {
		return err
	}
	*answer = *r.mapper.AnswerToEntity(m)
	return nil
}

func (r *AnswerRepositoryImpl) FindLatest(ctx context.Context, sessionId string, weekNumber, questionNumber int) (*entity.AnswerRecord, error) {
	var m model.AnswerRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND week_number = ? AND question_number = ?", sessionId, weekNumber, questionNumber).
		Order("iteration DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AnswerToEntity(&m), nil
}

func (r *AnswerRepositoryImpl) FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.AnswerRecord, error) {
	var models []*model.AnswerRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND week_number = ?", sessionId, weekNumber).
		Order("question_number ASC, iteration ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.AnswersToEntities(models), nil
}
