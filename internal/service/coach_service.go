package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"driven-coach-be/internal/constant"
	"driven-coach-be/internal/dto"
	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/pkg/logger"
	"driven-coach-be/internal/pkg/sessionlock"
	"driven-coach-be/internal/repository/unitofwork"
	"driven-coach-be/pkg/events"
	"driven-coach-be/pkg/llm"
	pktNats "driven-coach-be/pkg/nats"
	"driven-coach-be/pkg/progress"
	"driven-coach-be/pkg/scenario"
	"driven-coach-be/pkg/template"
)

// ICoachService runs the question-by-question coaching dialogue.
type ICoachService interface {
	StartWeek(ctx context.Context, request *dto.StartWeekRequest) (*dto.StartWeekResponse, error)
	SubmitAnswer(ctx context.Context, request *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error)
	GetNextQuestion(ctx context.Context, sessionId string, weekNumber int) (*dto.NextQuestionResponse, error)
}

type coachService struct {
	uowFactory       unitofwork.RepositoryFactory
	contentService   IContentService
	llmProvider      llm.CompletionProvider
	dispatcher       *scenario.Dispatcher
	locks            *sessionlock.Registry
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
	turnTimeout      time.Duration
}

func NewCoachService(
	uowFactory unitofwork.RepositoryFactory,
	contentService IContentService,
	llmProvider llm.CompletionProvider,
	locks *sessionlock.Registry,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	turnTimeout time.Duration,
) ICoachService {
	return &coachService{
		uowFactory:       uowFactory,
		contentService:   contentService,
		llmProvider:      llmProvider,
		dispatcher:       scenario.NewDispatcher(llmProvider),
		locks:            locks,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
		turnTimeout:      turnTimeout,
	}
}

// snapshotBlocks adapts a week snapshot's content blocks to the template
// lookup interface.
type snapshotBlocks struct {
	snapshot *entity.WeekSnapshot
}

func (l snapshotBlocks) Resolve(name string) (string, bool) {
	return l.snapshot.Block(name)
}

func (cs *coachService) StartWeek(ctx context.Context, request *dto.StartWeekRequest) (*dto.StartWeekResponse, error) {
	snapshot, err := cs.contentService.GetSnapshot(ctx, request.WeekNumber)
	if err != nil {
		return nil, err
	}

	if err := cs.checkWeekUnlocked(ctx, request.SessionId, request.WeekNumber); err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.ConversationStateRepository().FindBySessionAndWeek(ctx, request.SessionId, request.WeekNumber)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &entity.ConversationState{
			SessionId:       request.SessionId,
			Name:            participantName(request.DisplayName),
			WeekNumber:      request.WeekNumber,
			CurrentQuestion: 1,
			Questions:       make(map[int]entity.QuestionState),
			UpdatedAt:       time.Now(),
		}
		if err := uow.ConversationStateRepository().Upsert(ctx, state); err != nil {
			return nil, err
		}
	}

	welcome := snapshot.Week.WelcomeMessage
	var questionView *dto.QuestionView
	if question, ok := snapshot.Question(state.CurrentQuestion); ok {
		view, err := cs.questionView(ctx, uow, snapshot, request.SessionId, state.Name, question)
		if err != nil {
			return nil, err
		}
		questionView = view
		if view.Intro != "" {
			welcome = welcome + "\n\n" + view.Intro
		}
	}

	cs.log.Info("coach", "week started", map[string]interface{}{
		"session_id":  request.SessionId,
		"week_number": request.WeekNumber,
	})

	return &dto.StartWeekResponse{
		WeekNumber:     snapshot.Week.Number,
		Title:          snapshot.Week.Title,
		WelcomeMessage: welcome,
		Question:       questionView,
	}, nil
}

func (cs *coachService) SubmitAnswer(ctx context.Context, request *dto.SubmitAnswerRequest) (*dto.SubmitAnswerResponse, error) {
	if !cs.locks.TryAcquire(request.SessionId) {
		return nil, ErrTurnInProgress
	}
	defer cs.locks.Release(request.SessionId)

	snapshot, err := cs.contentService.GetSnapshot(ctx, request.WeekNumber)
	if err != nil {
		return nil, err
	}

	if err := cs.checkWeekUnlocked(ctx, request.SessionId, request.WeekNumber); err != nil {
		return nil, err
	}

	question, ok := snapshot.Question(request.QuestionNumber)
	if !ok {
		return nil, ErrUnknownQuestion
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.ConversationStateRepository().FindBySessionAndWeek(ctx, request.SessionId, request.WeekNumber)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &entity.ConversationState{
			SessionId:       request.SessionId,
			WeekNumber:      request.WeekNumber,
			CurrentQuestion: 1,
			Questions:       make(map[int]entity.QuestionState),
		}
	}

	// Completion is monotonic. A replayed submit for a finished question
	// re-confirms without another model call or any new ledger fact.
	if state.Question(request.QuestionNumber).Completed {
		return cs.buildTurnResponse(ctx, uow, snapshot, state, "", state.Question(request.QuestionNumber))
	}

	if request.QuestionNumber != state.CurrentQuestion {
		return nil, ErrQuestionNotCurrent
	}

	iteration := state.Question(request.QuestionNumber).Iteration + 1
	lookup := cs.buildLookup(ctx, uow, snapshot, request.SessionId, map[string]string{
		"name":     participantName(state.Name),
		"answer":   request.Answer,
		"question": question.Text,
	})

	llmCtx, cancel := context.WithTimeout(ctx, cs.turnTimeout)
	defer cancel()

	// Step 1: classify the answer into one of the question's scenarios.
	classifier, ok := snapshot.Template(question.Id, constant.PromptKindClassifier, "")
	if !ok {
		return nil, cs.failTurn(request, iteration, fmt.Errorf("%w: classifier for question %d", ErrPromptNotConfigured, question.Number))
	}
	labels := snapshot.ScenarioLabels(question.Id)

	classified, err := cs.dispatcher.Classify(llmCtx, classifier.Text, lookup, request.Answer, labels)
	if err != nil {
		var mismatch *scenario.MismatchError
		if errors.As(err, &mismatch) {
			// Two classification attempts landed outside the label set. The
			// turn commits nothing; ask the user to rephrase.
			cs.log.Warn("coach", "classification mismatch", map[string]interface{}{
				"session_id":      request.SessionId,
				"week_number":     request.WeekNumber,
				"question_number": request.QuestionNumber,
				"got":             mismatch.Got,
			})
			return &dto.SubmitAnswerResponse{
				ReplyText: constant.RephraseMessage,
				Iteration: state.Question(request.QuestionNumber).Iteration,
			}, nil
		}
		return nil, cs.failTurn(request, iteration, cs.completionError(err))
	}

	// Step 2: generate the coaching reply from the scenario's template.
	responseTemplate, ok := snapshot.Template(question.Id, constant.PromptKindScenarioResponse, classified)
	if !ok {
		return nil, cs.failTurn(request, iteration, fmt.Errorf("%w: scenario %q response for question %d", ErrPromptNotConfigured, classified, question.Number))
	}
	systemPrompt, err := template.Resolve(responseTemplate.Text, lookup)
	if err != nil {
		return nil, cs.failTurn(request, iteration, err)
	}
	if iteration >= question.MaxIterations {
		systemPrompt = systemPrompt + "\n\n" + constant.NoFollowupsInstruction
	}

	replyText, err := cs.llmProvider.Complete(llmCtx, systemPrompt, request.Answer,
		llm.WithTemperature(constant.ResponseTemperature),
	)
	if err != nil {
		return nil, cs.failTurn(request, iteration, cs.completionError(err))
	}

	completed := progress.ShouldAdvance(iteration, question.MaxIterations, classified, question.ResolvedScenarios)

	// Step 3: completeness validation, only when the scenario alone did not
	// already settle the question.
	if !completed && question.RequiresValidation {
		if validation, ok := snapshot.Template(question.Id, constant.PromptKindValidation, ""); ok {
			validated, err := cs.validateAnswer(llmCtx, validation.Text, lookup, request.Answer)
			if err != nil {
				return nil, cs.failTurn(request, iteration, err)
			}
			completed = validated
		}
	}

	prev := state.Question(request.QuestionNumber)
	qs := entity.QuestionState{
		Answers:   append(prev.Answers, request.Answer),
		Replies:   append(prev.Replies, replyText),
		Iteration: iteration,
		Completed: completed,
		Scenario:  classified,
	}
	state.SetQuestion(request.QuestionNumber, qs)
	if completed {
		state.CurrentQuestion = cs.nextIncompleteQuestion(snapshot, state)
	}
	state.UpdatedAt = time.Now()

	// Step 4: commit the turn's facts atomically.
	if err := cs.commitTurn(ctx, request, iteration, classified, replyText, completed, state); err != nil {
		return nil, cs.failTurn(request, iteration, err)
	}

	weekDone := progress.WeekComplete(snapshot.QuestionCount(), state.CompletedCount())
	cs.publishTurn(ctx, request, iteration, classified, completed, weekDone)

	response, err := cs.buildTurnResponse(ctx, uow, snapshot, state, replyText, qs)
	if err != nil {
		return nil, cs.failTurn(request, iteration, err)
	}
	return response, nil
}

func (cs *coachService) GetNextQuestion(ctx context.Context, sessionId string, weekNumber int) (*dto.NextQuestionResponse, error) {
	snapshot, err := cs.contentService.GetSnapshot(ctx, weekNumber)
	if err != nil {
		return nil, err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	state, err := uow.ConversationStateRepository().FindBySessionAndWeek(ctx, sessionId, weekNumber)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &entity.ConversationState{SessionId: sessionId, CurrentQuestion: 1}
	}

	if progress.WeekComplete(snapshot.QuestionCount(), state.CompletedCount()) {
		outro, err := cs.weekOutro(ctx, uow, snapshot, sessionId, state.Name)
		if err != nil {
			return nil, err
		}
		return &dto.NextQuestionResponse{
			WeekComplete: true,
			OutroMessage: outro,
		}, nil
	}

	question, ok := snapshot.Question(state.CurrentQuestion)
	if !ok {
		return nil, ErrUnknownQuestion
	}
	view, err := cs.questionView(ctx, uow, snapshot, sessionId, state.Name, question)
	if err != nil {
		return nil, err
	}
	return &dto.NextQuestionResponse{Question: view}, nil
}

// checkWeekUnlocked enforces the strictly sequential programme: week N is
// reachable only once week N-1 has every question completed.
func (cs *coachService) checkWeekUnlocked(ctx context.Context, sessionId string, weekNumber int) error {
	if weekNumber <= 1 {
		return nil
	}

	prior, err := cs.contentService.GetSnapshot(ctx, weekNumber-1)
	if err != nil {
		return err
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	completions, err := uow.CompletionRepository().FindBySessionAndWeek(ctx, sessionId, weekNumber-1)
	if err != nil {
		return err
	}

	priorComplete := progress.WeekComplete(prior.QuestionCount(), len(completions))
	if !progress.IsWeekUnlocked(weekNumber, priorComplete) {
		return ErrWeekLocked
	}
	return nil
}

func (cs *coachService) buildLookup(ctx context.Context, uow unitofwork.UnitOfWork, snapshot *entity.WeekSnapshot, sessionId string, builtins map[string]string) template.Lookup {
	lookup := template.Multi{
		snapshotBlocks{snapshot: snapshot},
		template.AnswerLookup{
			Answer: func(questionNumber int) (string, bool) {
				record, err := uow.AnswerRepository().FindLatest(ctx, sessionId, snapshot.Week.Number, questionNumber)
				if err != nil || record == nil {
					return "", false
				}
				return record.Text, true
			},
		},
	}
	if builtins != nil {
		lookup = append(template.Multi{template.MapLookup(builtins)}, lookup...)
	}
	return lookup
}

func (cs *coachService) validateAnswer(ctx context.Context, validationTemplate string, lookup template.Lookup, answer string) (bool, error) {
	prompt, err := template.Resolve(validationTemplate, lookup)
	if err != nil {
		return false, err
	}

	raw, err := cs.llmProvider.Complete(ctx, prompt, answer,
		llm.WithTemperature(scenario.ValidationTemperature),
	)
	if err != nil {
		return false, cs.completionError(err)
	}

	result := scenario.ParseValidation(raw)
	if !result.Complete {
		cs.log.Debug("coach", "answer judged incomplete", map[string]interface{}{
			"missing": result.Missing,
		})
	}
	return result.Complete, nil
}

// commitTurn persists the answer, the reply, the optional completion mark,
// and the updated state in one transaction. A failure rolls back everything,
// leaving the ledger exactly as before the turn.
func (cs *coachService) commitTurn(ctx context.Context, request *dto.SubmitAnswerRequest, iteration int, classified, replyText string, completed bool, state *entity.ConversationState) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	answer := &entity.AnswerRecord{
		SessionId:      request.SessionId,
		WeekNumber:     request.WeekNumber,
		QuestionNumber: request.QuestionNumber,
		Iteration:      iteration,
		Scenario:       classified,
		Text:           request.Answer,
	}
	if err := uow.AnswerRepository().Upsert(ctx, answer); err != nil {
		return err
	}

	reply := &entity.ReplyRecord{
		SessionId:      request.SessionId,
		WeekNumber:     request.WeekNumber,
		QuestionNumber: request.QuestionNumber,
		Iteration:      iteration,
		Scenario:       classified,
		TemplateKind:   constant.PromptKindScenarioResponse,
		Text:           replyText,
	}
	if err := uow.ReplyRepository().Upsert(ctx, reply); err != nil {
		return err
	}

	if completed {
		completion := &entity.CompletionRecord{
			SessionId:      request.SessionId,
			WeekNumber:     request.WeekNumber,
			QuestionNumber: request.QuestionNumber,
			Scenario:       classified,
			Iterations:     iteration,
		}
		if err := uow.CompletionRepository().Record(ctx, completion); err != nil {
			return err
		}
	}

	if err := uow.ConversationStateRepository().Upsert(ctx, state); err != nil {
		return err
	}

	return uow.Commit()
}

// publishTurn emits post-commit events. Event delivery is best effort; a
// failed publish never fails the already-committed turn.
func (cs *coachService) publishTurn(ctx context.Context, request *dto.SubmitAnswerRequest, iteration int, classified string, completed, weekDone bool) {
	turnEvent := events.TurnCommitted{
		SessionID:      request.SessionId,
		WeekNumber:     request.WeekNumber,
		QuestionNumber: request.QuestionNumber,
		Iteration:      iteration,
		Scenario:       classified,
		Completed:      completed,
		CommittedAt:    time.Now(),
	}

	if payload, err := json.Marshal(turnEvent); err == nil {
		if err := cs.publisherService.Publish(ctx, payload); err != nil {
			cs.log.Warn("coach", "failed to publish turn event", map[string]interface{}{"error": err.Error()})
		}
	}

	if cs.eventPublisher != nil {
		if err := cs.eventPublisher.Publish(ctx, turnEvent); err != nil {
			cs.log.Warn("coach", "failed to publish turn event to NATS", map[string]interface{}{"error": err.Error()})
		}
		if weekDone {
			weekEvent := events.WeekCompleted{
				SessionID:   request.SessionId,
				WeekNumber:  request.WeekNumber,
				CompletedAt: time.Now(),
			}
			if err := cs.eventPublisher.Publish(ctx, weekEvent); err != nil {
				cs.log.Warn("coach", "failed to publish week event to NATS", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}

// nextIncompleteQuestion returns the lowest question number without a
// completion, or the number past the last question when the week is done.
func (cs *coachService) nextIncompleteQuestion(snapshot *entity.WeekSnapshot, state *entity.ConversationState) int {
	for _, q := range snapshot.Questions {
		if !state.Question(q.Number).Completed {
			return q.Number
		}
	}
	return snapshot.QuestionCount() + 1
}

func (cs *coachService) buildTurnResponse(ctx context.Context, uow unitofwork.UnitOfWork, snapshot *entity.WeekSnapshot, state *entity.ConversationState, replyText string, qs entity.QuestionState) (*dto.SubmitAnswerResponse, error) {
	response := &dto.SubmitAnswerResponse{
		ReplyText:  replyText,
		IsComplete: qs.Completed,
		MoveToNext: qs.Completed,
		Iteration:  qs.Iteration,
		Scenario:   qs.Scenario,
	}

	if qs.Completed {
		if progress.WeekComplete(snapshot.QuestionCount(), state.CompletedCount()) {
			outro, err := cs.weekOutro(ctx, uow, snapshot, state.SessionId, state.Name)
			if err != nil {
				return nil, err
			}
			response.OutroMessage = outro
		} else if next, ok := snapshot.Question(state.CurrentQuestion); ok {
			view, err := cs.questionView(ctx, uow, snapshot, state.SessionId, state.Name, next)
			if err != nil {
				return nil, err
			}
			response.NextQuestion = view
		}
	}

	return response, nil
}

// questionView pairs a question's text with its resolved intro template when
// one is authored.
func (cs *coachService) questionView(ctx context.Context, uow unitofwork.UnitOfWork, snapshot *entity.WeekSnapshot, sessionId, name string, question entity.Question) (*dto.QuestionView, error) {
	view := &dto.QuestionView{Number: question.Number, Text: question.Text}
	intro, ok := snapshot.Template(question.Id, constant.PromptKindIntro, "")
	if !ok {
		return view, nil
	}

	lookup := cs.buildLookup(ctx, uow, snapshot, sessionId, map[string]string{
		"name":     participantName(name),
		"question": question.Text,
	})
	resolved, err := template.Resolve(intro.Text, lookup)
	if err != nil {
		return nil, err
	}
	view.Intro = resolved
	return view, nil
}

// weekOutro resolves the week's terminal message. An outro-kind template on
// the week's last question wins over the week's own outro text; either way
// placeholders are substituted before the text reaches the user.
func (cs *coachService) weekOutro(ctx context.Context, uow unitofwork.UnitOfWork, snapshot *entity.WeekSnapshot, sessionId, name string) (string, error) {
	text := snapshot.Week.OutroMessage
	for _, q := range snapshot.Questions {
		if outro, ok := snapshot.Template(q.Id, constant.PromptKindOutro, ""); ok {
			text = outro.Text
		}
	}
	if text == "" {
		return "", nil
	}

	lookup := cs.buildLookup(ctx, uow, snapshot, sessionId, map[string]string{
		"name": participantName(name),
	})
	return template.Resolve(text, lookup)
}

// failTurn records the turn's full context before surfacing a fatal error.
// The user-visible message is mapped generically at the controller; detail
// lives in the log only.
func (cs *coachService) failTurn(request *dto.SubmitAnswerRequest, iteration int, err error) error {
	cs.log.Error("coach", "turn failed", map[string]interface{}{
		"session_id":      request.SessionId,
		"week_number":     request.WeekNumber,
		"question_number": request.QuestionNumber,
		"iteration":       iteration,
		"error":           err.Error(),
	})
	return err
}

// participantName keeps {name} resolvable for sessions that never supplied
// one.
func participantName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

func (cs *coachService) completionError(err error) error {
	return fmt.Errorf("%w: %v", ErrCompletionUnavailable, err)
}
