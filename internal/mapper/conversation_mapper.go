package mapper

import (
	"encoding/json"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/model"

	"gorm.io/datatypes"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) StateToEntity(s *model.ConversationState) (*entity.ConversationState, error) {
	if s == nil {
		return nil, nil
	}

	questions := make(map[int]entity.QuestionState)
	if len(s.Questions) > 0 {
		if err := json.Unmarshal(s.Questions, &questions); err != nil {
			return nil, err
		}
	}

	return &entity.ConversationState{
		SessionId:       s.SessionId,
		Name:            s.Name,
		WeekNumber:      s.WeekNumber,
		CurrentQuestion: s.CurrentQuestion,
		Questions:       questions,
		UpdatedAt:       s.UpdatedAt,
	}, nil
}

func (m *ConversationMapper) StateToModel(s *entity.ConversationState) (*model.ConversationState, error) {
	if s == nil {
		return nil, nil
	}

	questions, err := json.Marshal(s.Questions)
	if err != nil {
		return nil, err
	}

	return &model.ConversationState{
		SessionId:       s.SessionId,
		Name:            s.Name,
		WeekNumber:      s.WeekNumber,
		CurrentQuestion: s.CurrentQuestion,
		Questions:       datatypes.JSON(questions),
		UpdatedAt:       s.UpdatedAt,
	}, nil
}

func (m *ConversationMapper) AnswerToEntity(a *model.AnswerRecord) *entity.AnswerRecord {
	if a == nil {
		return nil
	}

	return &entity.AnswerRecord{
		Id:             a.Id,
		SessionId:      a.SessionId,
		WeekNumber:     a.WeekNumber,
		QuestionNumber: a.QuestionNumber,
		Iteration:      a.Iteration,
		Scenario:       a.Scenario,
		Text:           a.Text,
		CreatedAt:      a.CreatedAt,
	}
}

func (m *ConversationMapper) AnswerToModel(a *entity.AnswerRecord) *model.AnswerRecord {
	if a == nil {
		return nil
	}

	return &model.AnswerRecord{
		Id:             a.Id,
		SessionId:      a.SessionId,
		WeekNumber:     a.WeekNumber,
		QuestionNumber: a.QuestionNumber,
		Iteration:      a.Iteration,
		Scenario:       a.Scenario,
		Text:           a.Text,
		CreatedAt:      a.CreatedAt,
	}
}

func (m *ConversationMapper) ReplyToEntity(r *model.ReplyRecord) *entity.ReplyRecord {
	if r == nil {
		return nil
	}

	return &entity.ReplyRecord{
		Id:             r.Id,
		SessionId:      r.SessionId,
		WeekNumber:     r.WeekNumber,
		QuestionNumber: r.QuestionNumber,
		Iteration:      r.Iteration,
		Scenario:       r.Scenario,
		TemplateKind:   r.TemplateKind,
		Text:           r.Text,
		CreatedAt:      r.CreatedAt,
	}
}

func (m *ConversationMapper) ReplyToModel(r *entity.ReplyRecord) *model.ReplyRecord {
	if r == nil {
		return nil
	}

	return &model.ReplyRecord{
		Id:             r.Id,
		SessionId:      r.SessionId,
		WeekNumber:     r.WeekNumber,
		QuestionNumber: r.QuestionNumber,
		Iteration:      r.Iteration,
		Scenario:       r.Scenario,
		TemplateKind:   r.TemplateKind,
		Text:           r.Text,
		CreatedAt:      r.CreatedAt,
	}
}

func (m *ConversationMapper) CompletionToEntity(c *model.CompletionRecord) *entity.CompletionRecord {
	if c == nil {
		return nil
	}

	return &entity.CompletionRecord{
		Id:             c.Id,
		SessionId:      c.SessionId,
		WeekNumber:     c.WeekNumber,
		QuestionNumber: c.QuestionNumber,
		Scenario:       c.Scenario,
		Iterations:     c.Iterations,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ConversationMapper) CompletionToModel(c *entity.CompletionRecord) *model.CompletionRecord {
	if c == nil {
		return nil
	}

	return &model.CompletionRecord{
		Id:             c.Id,
		SessionId:      c.SessionId,
		WeekNumber:     c.WeekNumber,
		QuestionNumber: c.QuestionNumber,
		Scenario:       c.Scenario,
		Iterations:     c.Iterations,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ConversationMapper) AnswersToEntities(answers []*model.AnswerRecord) []*entity.AnswerRecord {
	entities := make([]*entity.AnswerRecord, len(answers))
	for i, a := range answers {
		entities[i] = m.AnswerToEntity(a)
	}
	return entities
}

func (m *ConversationMapper) CompletionsToEntities(completions []*model.CompletionRecord) []*entity.CompletionRecord {
	entities := make([]*entity.CompletionRecord, len(completions))
	for i, c := range completions {
		entities[i] = m.CompletionToEntity(c)
	}
	return entities
}
