package service

import (
	"context"

	"driven-coach-be/internal/dto"
	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/pkg/logger"
	"driven-coach-be/internal/repository/contract"
	"driven-coach-be/internal/repository/memory"
	"driven-coach-be/internal/repository/specification"

	"github.com/google/uuid"
)

// IContentService serves authored week content as immutable snapshots.
type IContentService interface {
	GetSnapshot(ctx context.Context, weekNumber int) (*entity.WeekSnapshot, error)
	ListWeeks(ctx context.Context) ([]*entity.Week, error)
	Reload(ctx context.Context) (*dto.ReloadContentResponse, error)
}

type contentService struct {
	weekRepo     contract.WeekRepository
	questionRepo contract.QuestionRepository
	templateRepo contract.PromptTemplateRepository
	blockRepo    contract.ContentBlockRepository
	snapshotRepo *memory.SnapshotRepository
	log          logger.ILogger
}

func NewContentService(
	weekRepo contract.WeekRepository,
	questionRepo contract.QuestionRepository,
	templateRepo contract.PromptTemplateRepository,
	blockRepo contract.ContentBlockRepository,
	snapshotRepo *memory.SnapshotRepository,
	log logger.ILogger,
) IContentService {
	return &contentService{
		weekRepo:     weekRepo,
		questionRepo: questionRepo,
		templateRepo: templateRepo,
		blockRepo:    blockRepo,
		snapshotRepo: snapshotRepo,
		log:          log,
	}
}

// GetSnapshot returns the cached snapshot for a week, building it from the
// database on first use. Callers hold the returned pointer for the whole
// turn; a concurrent Reload swaps the cache entry without touching it.
func (cs *contentService) GetSnapshot(ctx context.Context, weekNumber int) (*entity.WeekSnapshot, error) {
	if snapshot, found := cs.snapshotRepo.Get(weekNumber); found {
		return snapshot, nil
	}

	snapshot, err := cs.buildSnapshot(ctx, weekNumber)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, ErrWeekNotFound
	}

	cs.snapshotRepo.Save(snapshot)
	return snapshot, nil
}

func (cs *contentService) ListWeeks(ctx context.Context) ([]*entity.Week, error) {
	return cs.weekRepo.FindAll(ctx, specification.OrderBy{Field: "number"})
}

// Reload rebuilds every week's snapshot from the database and swaps them in.
// In-flight turns keep the snapshot they started with.
func (cs *contentService) Reload(ctx context.Context) (*dto.ReloadContentResponse, error) {
	weeks, err := cs.weekRepo.FindAll(ctx, specification.OrderBy{Field: "number"})
	if err != nil {
		return nil, err
	}

	loaded := 0
	for _, week := range weeks {
		snapshot, err := cs.buildSnapshot(ctx, week.Number)
		if err != nil {
			return nil, err
		}
		if snapshot == nil {
			continue
		}
		cs.snapshotRepo.Save(snapshot)
		loaded++
	}

	cs.log.Info("content", "content reloaded", map[string]interface{}{
		"weeks_loaded": loaded,
	})

	return &dto.ReloadContentResponse{WeeksLoaded: loaded}, nil
}

func (cs *contentService) buildSnapshot(ctx context.Context, weekNumber int) (*entity.WeekSnapshot, error) {
	week, err := cs.weekRepo.FindOne(ctx, specification.ByWeekNumber{Number: weekNumber})
	if err != nil {
		return nil, err
	}
	if week == nil {
		return nil, nil
	}

	questions, err := cs.questionRepo.FindAll(ctx,
		specification.ByWeekId{WeekId: week.Id},
		specification.OrderBy{Field: "number"},
	)
	if err != nil {
		return nil, err
	}

	questionIds := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		questionIds[i] = q.Id
	}

	var templates []*entity.PromptTemplate
	if len(questionIds) > 0 {
		templates, err = cs.templateRepo.FindAll(ctx,
			specification.ByQuestionIds{QuestionIds: questionIds},
			specification.OrderBy{Field: "kind"},
			specification.OrderBy{Field: "scenario"},
		)
		if err != nil {
			return nil, err
		}
	}

	blocks, err := cs.blockRepo.FindAll(ctx, specification.ByWeekId{WeekId: week.Id})
	if err != nil {
		return nil, err
	}

	snapshot := &entity.WeekSnapshot{
		Week:      *week,
		Questions: make([]entity.Question, len(questions)),
		Templates: make([]entity.PromptTemplate, len(templates)),
		Blocks:    make([]entity.ContentBlock, len(blocks)),
	}
	for i, q := range questions {
		snapshot.Questions[i] = *q
	}
	for i, t := range templates {
		snapshot.Templates[i] = *t
	}
	for i, b := range blocks {
		snapshot.Blocks[i] = *b
	}

	return snapshot, nil
}
