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

type ReplyRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewReplyRepository(db *gorm.DB) contract.ReplyRepository {
	return &ReplyRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ReplyRepositoryImpl) Upsert(ctx context.Context, reply *entity.ReplyRecord) error {
	m := r.mapper.ReplyToModel(reply)
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "week_number"}, {Name: "question_number"}, {Name: "iteration"}},
		DoUpdates: clause.AssignmentColumns([]string{"scenario", "template_kind", "text"}),
	}).Create(m).Error; err != nil {
		return err
	}
	*reply = *r.mapper.ReplyToEntity(m)
	return nil
}

func (r *ReplyRepositoryImpl) FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.ReplyRecord, error) {
	var models []*model.ReplyRecord
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND week_number = ?", sessionId, weekNumber).
		Order("question_number ASC, iteration ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	replies := make([]*entity.ReplyRecord, len(models))
	for i, m := range models {
		replies[i] = r.mapper.ReplyToEntity(m)
	}
	return replies, nil
}
