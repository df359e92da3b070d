package mapper

import (
	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/model"
)

type ContentMapper struct{}

func NewContentMapper() *ContentMapper {
	return &ContentMapper{}
}

func (m *ContentMapper) WeekToEntity(w *model.Week) *entity.Week {
	if w == nil {
		return nil
	}

	return &entity.Week{
		Id:             w.Id,
		Number:         w.Number,
		Title:          w.Title,
		WelcomeMessage: w.WelcomeMessage,
		OutroMessage:   w.OutroMessage,
		CreatedAt:      w.CreatedAt,
	}
}

func (m *ContentMapper) QuestionToEntity(q *model.Question) *entity.Question {
	if q == nil {
		return nil
	}

	return &entity.Question{
		Id:                 q.Id,
		WeekId:             q.WeekId,
		Number:             q.Number,
		Text:               q.Text,
		MaxIterations:      q.MaxIterations,
		RequiresValidation: q.RequiresValidation,
		ResolvedScenarios:  q.ResolvedScenarios,
		CreatedAt:          q.CreatedAt,
	}
}

func (m *ContentMapper) TemplateToEntity(t *model.PromptTemplate) *entity.PromptTemplate {
	if t == nil {
		return nil
	}

	return &entity.PromptTemplate{
		Id:         t.Id,
		QuestionId: t.QuestionId,
		Kind:       t.Kind,
		Scenario:   t.Scenario,
		Text:       t.Text,
	}
}

func (m *ContentMapper) BlockToEntity(b *model.ContentBlock) *entity.ContentBlock {
	if b == nil {
		return nil
	}

	return &entity.ContentBlock{
		Id:     b.Id,
		WeekId: b.WeekId,
		Name:   b.Name,
		Text:   b.Text,
	}
}

func (m *ContentMapper) QuestionsToEntities(questions []*model.Question) []entity.Question {
	entities := make([]entity.Question, len(questions))
	for i, q := range questions {
		entities[i] = *m.QuestionToEntity(q)
	}
	return entities
}

func (m *ContentMapper) TemplatesToEntities(templates []*model.PromptTemplate) []entity.PromptTemplate {
	entities := make([]entity.PromptTemplate, len(templates))
	for i, t := range templates {
		entities[i] = *m.TemplateToEntity(t)
	}
	return entities
}

func (m *ContentMapper) BlocksToEntities(blocks []*model.ContentBlock) []entity.ContentBlock {
	entities := make([]entity.ContentBlock, len(blocks))
	for i, b := range blocks {
		entities[i] = *m.BlockToEntity(b)
	}
	return entities
}
