package service

import (
	"context"

	"driven-coach-be/internal/dto"
	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/pkg/logger"
	"driven-coach-be/internal/repository/memory"
	"driven-coach-be/internal/repository/unitofwork"
	"driven-coach-be/pkg/progress"
)

// IProgressService derives the per-session programme view from the
// completion ledger.
type IProgressService interface {
	GetProgress(ctx context.Context, sessionId string) (*dto.ProgressResponse, error)
	GetWeekProgress(ctx context.Context, sessionId string, weekNumber int) (*dto.WeekProgressView, error)
	CheckUnlock(ctx context.Context, sessionId string, weekNumber int) (*dto.CheckUnlockResponse, error)
}

type progressService struct {
	uowFactory     unitofwork.RepositoryFactory
	contentService IContentService
	progressRepo   *memory.ProgressRepository
	log            logger.ILogger
}

func NewProgressService(
	uowFactory unitofwork.RepositoryFactory,
	contentService IContentService,
	progressRepo *memory.ProgressRepository,
	log logger.ILogger,
) IProgressService {
	return &progressService{
		uowFactory:     uowFactory,
		contentService: contentService,
		progressRepo:   progressRepo,
		log:            log,
	}
}

func (ps *progressService) GetProgress(ctx context.Context, sessionId string) (*dto.ProgressResponse, error) {
	if summary, found := ps.progressRepo.Get(sessionId); found {
		return toProgressResponse(summary), nil
	}

	summary, err := ps.buildSummary(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	ps.progressRepo.Save(summary)
	return toProgressResponse(summary), nil
}

func (ps *progressService) GetWeekProgress(ctx context.Context, sessionId string, weekNumber int) (*dto.WeekProgressView, error) {
	summary, err := ps.GetProgress(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	for i := range summary.Weeks {
		if summary.Weeks[i].WeekNumber == weekNumber {
			return &summary.Weeks[i], nil
		}
	}
	return nil, ErrWeekNotFound
}

func (ps *progressService) CheckUnlock(ctx context.Context, sessionId string, weekNumber int) (*dto.CheckUnlockResponse, error) {
	week, err := ps.GetWeekProgress(ctx, sessionId, weekNumber)
	if err != nil {
		return nil, err
	}
	return &dto.CheckUnlockResponse{
		WeekNumber: weekNumber,
		Unlocked:   week.Unlocked,
	}, nil
}

func (ps *progressService) buildSummary(ctx context.Context, sessionId string) (*entity.ProgressSummary, error) {
	weeks, err := ps.contentService.ListWeeks(ctx)
	if err != nil {
		return nil, err
	}

	uow := ps.uowFactory.NewUnitOfWork(ctx)
	completions, err := uow.CompletionRepository().FindBySession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	completedByWeek := make(map[int][]int)
	for _, c := range completions {
		completedByWeek[c.WeekNumber] = append(completedByWeek[c.WeekNumber], c.QuestionNumber)
	}

	summary := &entity.ProgressSummary{
		SessionId: sessionId,
		Weeks:     make([]entity.WeekProgress, 0, len(weeks)),
	}

	priorComplete := true
	for _, week := range weeks {
		snapshot, err := ps.contentService.GetSnapshot(ctx, week.Number)
		if err != nil {
			return nil, err
		}

		completed := completedByWeek[week.Number]
		weekComplete := progress.WeekComplete(snapshot.QuestionCount(), len(completed))

		summary.Weeks = append(summary.Weeks, entity.WeekProgress{
			WeekNumber:         week.Number,
			Title:              week.Title,
			Unlocked:           progress.IsWeekUnlocked(week.Number, priorComplete),
			Completed:          weekComplete,
			QuestionCount:      snapshot.QuestionCount(),
			QuestionsCompleted: completed,
		})

		priorComplete = weekComplete
	}

	return summary, nil
}

func toProgressResponse(summary *entity.ProgressSummary) *dto.ProgressResponse {
	response := &dto.ProgressResponse{
		SessionId: summary.SessionId,
		Weeks:     make([]dto.WeekProgressView, len(summary.Weeks)),
	}
	for i, w := range summary.Weeks {
		response.Weeks[i] = dto.WeekProgressView{
			WeekNumber:         w.WeekNumber,
			Title:              w.Title,
			Unlocked:           w.Unlocked,
			Completed:          w.Completed,
			QuestionCount:      w.QuestionCount,
			QuestionsCompleted: w.QuestionsCompleted,
		}
	}
	return response
}
