package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"driven-coach-be/internal/constant"
	"driven-coach-be/internal/dto"
	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/pkg/sessionlock"
	"driven-coach-be/internal/repository/contract"
	"driven-coach-be/internal/repository/unitofwork"
	"driven-coach-be/pkg/events"
	"driven-coach-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes -----------------------------------------------------------------

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type scriptedCall struct {
	systemPrompt string
	userMessage  string
	options      llm.Options
}

// scriptedProvider returns queued completions in order, holding the last one
// for repeated calls.
type scriptedProvider struct {
	replies []string
	err     error
	calls   []scriptedCall
}

func (p *scriptedProvider) Complete(ctx context.Context, systemPrompt, userMessage string, options ...llm.Option) (string, error) {
	var opts llm.Options
	for _, o := range options {
		o(&opts)
	}
	p.calls = append(p.calls, scriptedCall{systemPrompt: systemPrompt, userMessage: userMessage, options: opts})
	if p.err != nil {
		return "", p.err
	}
	reply := p.replies[0]
	if len(p.replies) > 1 {
		p.replies = p.replies[1:]
	}
	return reply, nil
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type fakeContentService struct {
	snapshots map[int]*entity.WeekSnapshot
}

func (f *fakeContentService) GetSnapshot(ctx context.Context, weekNumber int) (*entity.WeekSnapshot, error) {
	snapshot, ok := f.snapshots[weekNumber]
	if !ok {
		return nil, ErrWeekNotFound
	}
	return snapshot, nil
}

func (f *fakeContentService) ListWeeks(ctx context.Context) ([]*entity.Week, error) {
	var weeks []*entity.Week
	for _, s := range f.snapshots {
		week := s.Week
		weeks = append(weeks, &week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Number < weeks[j].Number })
	return weeks, nil
}

func (f *fakeContentService) Reload(ctx context.Context) (*dto.ReloadContentResponse, error) {
	return &dto.ReloadContentResponse{WeeksLoaded: len(f.snapshots)}, nil
}

// fakeStore is the committed view shared by every unit of work a test hands
// out.
type fakeStore struct {
	states      map[string]*entity.ConversationState
	answers     []*entity.AnswerRecord
	replies     []*entity.ReplyRecord
	completions []*entity.CompletionRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: make(map[string]*entity.ConversationState)}
}

func stateKey(sessionId string, weekNumber int) string {
	return fmt.Sprintf("%s|%d", sessionId, weekNumber)
}

// fakeUnitOfWork stages writes while a transaction is open and applies them
// on Commit, so rollback behaviour is observable from the store.
type fakeUnitOfWork struct {
	store     *fakeStore
	pending   []func(*fakeStore)
	inTx      bool
	commitErr error
	begins    int
	commits   int
	rollbacks int
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return errors.New("transaction already started")
	}
	u.inTx = true
	u.begins++
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.inTx {
		return errors.New("no transaction to commit")
	}
	if u.commitErr != nil {
		return u.commitErr
	}
	for _, apply := range u.pending {
		apply(u.store)
	}
	u.pending = nil
	u.inTx = false
	u.commits++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.inTx {
		return nil
	}
	u.pending = nil
	u.inTx = false
	u.rollbacks++
	return nil
}

func (u *fakeUnitOfWork) write(apply func(*fakeStore)) {
	if u.inTx {
		u.pending = append(u.pending, apply)
		return
	}
	apply(u.store)
}

func (u *fakeUnitOfWork) ConversationStateRepository() contract.ConversationStateRepository {
	return &fakeStateRepo{uow: u}
}

func (u *fakeUnitOfWork) AnswerRepository() contract.AnswerRepository {
	return &fakeAnswerRepo{uow: u}
}

func (u *fakeUnitOfWork) ReplyRepository() contract.ReplyRepository {
	return &fakeReplyRepo{uow: u}
}

func (u *fakeUnitOfWork) CompletionRepository() contract.CompletionRepository {
	return &fakeCompletionRepo{uow: u}
}

type fakeStateRepo struct{ uow *fakeUnitOfWork }

func (r *fakeStateRepo) Upsert(ctx context.Context, state *entity.ConversationState) error {
	stored := *state
	stored.Questions = make(map[int]entity.QuestionState, len(state.Questions))
	for n, qs := range state.Questions {
		stored.Questions[n] = qs
	}
	r.uow.write(func(s *fakeStore) {
		s.states[stateKey(stored.SessionId, stored.WeekNumber)] = &stored
	})
	return nil
}

func (r *fakeStateRepo) FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) (*entity.ConversationState, error) {
	stored, ok := r.uow.store.states[stateKey(sessionId, weekNumber)]
	if !ok {
		return nil, nil
	}
	state := *stored
	state.Questions = make(map[int]entity.QuestionState, len(stored.Questions))
	for n, qs := range stored.Questions {
		state.Questions[n] = qs
	}
	return &state, nil
}

type fakeAnswerRepo struct{ uow *fakeUnitOfWork }

func (r *fakeAnswerRepo) Upsert(ctx context.Context, answer *entity.AnswerRecord) error {
	stored := *answer
	r.uow.write(func(s *fakeStore) {
		for i, existing := range s.answers {
			if existing.SessionId == stored.SessionId && existing.WeekNumber == stored.WeekNumber &&
				existing.QuestionNumber == stored.QuestionNumber && existing.Iteration == stored.Iteration {
				s.answers[i] = &stored
				return
			}
		}
		s.answers = append(s.answers, &stored)
	})
	return nil
}

func (r *fakeAnswerRepo) FindLatest(ctx context.Context, sessionId string, weekNumber, questionNumber int) (*entity.AnswerRecord, error) {
	var latest *entity.AnswerRecord
	for _, a := range r.uow.store.answers {
		if a.SessionId == sessionId && a.WeekNumber == weekNumber && a.QuestionNumber == questionNumber {
			if latest == nil || a.Iteration > latest.Iteration {
				latest = a
			}
		}
	}
	return latest, nil
}

func (r *fakeAnswerRepo) FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.AnswerRecord, error) {
	var out []*entity.AnswerRecord
	for _, a := range r.uow.store.answers {
		if a.SessionId == sessionId && a.WeekNumber == weekNumber {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeReplyRepo struct{ uow *fakeUnitOfWork }

func (r *fakeReplyRepo) Upsert(ctx context.Context, reply *entity.ReplyRecord) error {
	stored := *reply
	r.uow.write(func(s *fakeStore) {
		for i, existing := range s.replies {
			if existing.SessionId == stored.SessionId && existing.WeekNumber == stored.WeekNumber &&
				existing.QuestionNumber == stored.QuestionNumber && existing.Iteration == stored.Iteration {
				s.replies[i] = &stored
				return
			}
		}
		s.replies = append(s.replies, &stored)
	})
	return nil
}

func (r *fakeReplyRepo) FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.ReplyRecord, error) {
	var out []*entity.ReplyRecord
	for _, reply := range r.uow.store.replies {
		if reply.SessionId == sessionId && reply.WeekNumber == weekNumber {
			out = append(out, reply)
		}
	}
	return out, nil
}

type fakeCompletionRepo struct{ uow *fakeUnitOfWork }

func (r *fakeCompletionRepo) Record(ctx context.Context, completion *entity.CompletionRecord) error {
	stored := *completion
	r.uow.write(func(s *fakeStore) {
		for _, existing := range s.completions {
			if existing.SessionId == stored.SessionId && existing.WeekNumber == stored.WeekNumber &&
				existing.QuestionNumber == stored.QuestionNumber {
				existing.Scenario = stored.Scenario
				existing.Iterations = stored.Iterations
				return
			}
		}
		s.completions = append(s.completions, &stored)
	})
	return nil
}

func (r *fakeCompletionRepo) FindBySessionAndWeek(ctx context.Context, sessionId string, weekNumber int) ([]*entity.CompletionRecord, error) {
	var out []*entity.CompletionRecord
	for _, c := range r.uow.store.completions {
		if c.SessionId == sessionId && c.WeekNumber == weekNumber {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) FindBySession(ctx context.Context, sessionId string) ([]*entity.CompletionRecord, error) {
	var out []*entity.CompletionRecord
	for _, c := range r.uow.store.completions {
		if c.SessionId == sessionId {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeFactory struct{ uow *fakeUnitOfWork }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// --- fixtures --------------------------------------------------------------

type coachFixture struct {
	service   ICoachService
	store     *fakeStore
	uow       *fakeUnitOfWork
	provider  *scriptedProvider
	publisher *recordingPublisher
	locks     *sessionlock.Registry
	snapshots map[int]*entity.WeekSnapshot
}

func newCoachFixture(t *testing.T, replies ...string) *coachFixture {
	t.Helper()

	store := newFakeStore()
	uow := &fakeUnitOfWork{store: store}
	provider := &scriptedProvider{replies: replies}
	publisher := &recordingPublisher{}
	locks := sessionlock.NewRegistry()
	snapshots := map[int]*entity.WeekSnapshot{1: weekOneSnapshot()}

	svc := NewCoachService(
		&fakeFactory{uow: uow},
		&fakeContentService{snapshots: snapshots},
		provider,
		locks,
		publisher,
		nil,
		noopLogger{},
		5*time.Second,
	)

	return &coachFixture{
		service:   svc,
		store:     store,
		uow:       uow,
		provider:  provider,
		publisher: publisher,
		locks:     locks,
		snapshots: snapshots,
	}
}

var (
	questionOneId = uuid.New()
	questionTwoId = uuid.New()
)

func weekOneSnapshot() *entity.WeekSnapshot {
	return &entity.WeekSnapshot{
		Week: entity.Week{
			Id:             uuid.New(),
			Number:         1,
			Title:          "Getting Started",
			WelcomeMessage: "Welcome to week one.",
			OutroMessage:   "That wraps up the week. Well done!",
		},
		Questions: []entity.Question{
			{
				Id:                questionOneId,
				Number:            1,
				Text:              "What was your biggest takeaway?",
				MaxIterations:     3,
				ResolvedScenarios: []string{"SCENARIO_1"},
			},
			{
				Id:                questionTwoId,
				Number:            2,
				Text:              "What goal will you set?",
				MaxIterations:     5,
				ResolvedScenarios: []string{"SCENARIO_1"},
			},
		},
		Templates: []entity.PromptTemplate{
			{QuestionId: questionOneId, Kind: constant.PromptKindIntro, Text: "Nice to meet you, {name}."},
			{QuestionId: questionOneId, Kind: constant.PromptKindClassifier, Text: "Classify the takeaway from {week recap}."},
			{QuestionId: questionOneId, Kind: constant.PromptKindScenarioResponse, Scenario: "SCENARIO_1", Text: "Affirm {name}'s takeaway."},
			{QuestionId: questionOneId, Kind: constant.PromptKindScenarioResponse, Scenario: "SCENARIO_2", Text: "Probe deeper into the takeaway."},
			{QuestionId: questionTwoId, Kind: constant.PromptKindClassifier, Text: "Classify the goal."},
			{QuestionId: questionTwoId, Kind: constant.PromptKindScenarioResponse, Scenario: "SCENARIO_1", Text: "Encourage the goal, building on {Answer to question 1}."},
			{QuestionId: questionTwoId, Kind: constant.PromptKindScenarioResponse, Scenario: "SCENARIO_2", Text: "Help sharpen the goal."},
		},
		Blocks: []entity.ContentBlock{
			{Name: "week recap", Text: "This week covered strengths."},
		},
	}
}

func submitRequest(questionNumber int, answer string) *dto.SubmitAnswerRequest {
	return &dto.SubmitAnswerRequest{
		SessionId:      "session-1",
		WeekNumber:     1,
		QuestionNumber: questionNumber,
		Answer:         answer,
	}
}

// --- SubmitAnswer ----------------------------------------------------------

func TestSubmitAnswerResolvedScenarioCommitsTurn(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "Great takeaway, keep going.")

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "I learned to name my strengths."))
	require.NoError(t, err)

	assert.True(t, res.IsComplete)
	assert.True(t, res.MoveToNext)
	assert.Equal(t, 1, res.Iteration)
	assert.Equal(t, "SCENARIO_1", res.Scenario)
	assert.Equal(t, "Great takeaway, keep going.", res.ReplyText)
	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, 2, res.NextQuestion.Number)
	assert.Empty(t, res.OutroMessage)

	require.Len(t, f.store.answers, 1)
	answer := f.store.answers[0]
	assert.Equal(t, "I learned to name my strengths.", answer.Text)
	assert.Equal(t, 1, answer.Iteration)
	assert.Equal(t, "SCENARIO_1", answer.Scenario)

	require.Len(t, f.store.replies, 1)
	assert.Equal(t, "Great takeaway, keep going.", f.store.replies[0].Text)
	assert.Equal(t, "SCENARIO_1", f.store.replies[0].Scenario)
	assert.Equal(t, constant.PromptKindScenarioResponse, f.store.replies[0].TemplateKind)

	require.Len(t, f.store.completions, 1)
	assert.Equal(t, 1, f.store.completions[0].QuestionNumber)

	state := f.store.states[stateKey("session-1", 1)]
	require.NotNil(t, state)
	assert.Equal(t, 2, state.CurrentQuestion)
	assert.True(t, state.Question(1).Completed)
	assert.Equal(t, []string{"I learned to name my strengths."}, state.Question(1).Answers)
	assert.Equal(t, []string{"Great takeaway, keep going."}, state.Question(1).Replies)

	assert.Equal(t, 1, f.uow.commits)

	require.Len(t, f.publisher.payloads, 1)
	var event events.TurnCommitted
	require.NoError(t, json.Unmarshal(f.publisher.payloads[0], &event))
	assert.Equal(t, "session-1", event.SessionID)
	assert.Equal(t, 1, event.QuestionNumber)
	assert.True(t, event.Completed)
}

func TestSubmitAnswerUnresolvedScenarioStaysOnQuestion(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_2", "Tell me more about that.")

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "It was fine I guess."))
	require.NoError(t, err)

	assert.False(t, res.IsComplete)
	assert.False(t, res.MoveToNext)
	assert.Equal(t, 1, res.Iteration)
	assert.Nil(t, res.NextQuestion)

	assert.Len(t, f.store.answers, 1)
	assert.Len(t, f.store.replies, 1)
	assert.Empty(t, f.store.completions)

	state := f.store.states[stateKey("session-1", 1)]
	require.NotNil(t, state)
	assert.Equal(t, 1, state.CurrentQuestion)
	assert.Equal(t, 1, state.Question(1).Iteration)
}

func TestSubmitAnswerIterationCapForcesCompletion(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_2", "Let's move on.")
	f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
		SessionId:       "session-1",
		WeekNumber:      1,
		CurrentQuestion: 1,
		Questions: map[int]entity.QuestionState{
			1: {Iteration: 2, Scenario: "SCENARIO_2"},
		},
	}

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "Still the same."))
	require.NoError(t, err)

	assert.True(t, res.IsComplete)
	assert.Equal(t, 3, res.Iteration)

	require.Len(t, f.provider.calls, 2)
	assert.True(t, strings.HasSuffix(f.provider.calls[1].systemPrompt, constant.NoFollowupsInstruction),
		"final iteration must append the no-followups instruction")

	require.Len(t, f.store.completions, 1)
	assert.Equal(t, 3, f.store.completions[0].Iterations)
}

func TestSubmitAnswerClassificationMismatchPersistsNothing(t *testing.T) {
	f := newCoachFixture(t, "NOT_A_LABEL")

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "???"))
	require.NoError(t, err)

	assert.Equal(t, constant.RephraseMessage, res.ReplyText)
	assert.False(t, res.IsComplete)
	assert.Zero(t, res.Iteration)

	// Two classification attempts, no response generation.
	assert.Len(t, f.provider.calls, 2)

	assert.Empty(t, f.store.answers)
	assert.Empty(t, f.store.replies)
	assert.Empty(t, f.store.completions)
	assert.Empty(t, f.store.states)
	assert.Zero(t, f.uow.begins)
	assert.Empty(t, f.publisher.payloads)
}

func TestSubmitAnswerRejectsConcurrentTurn(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "reply")
	require.True(t, f.locks.TryAcquire("session-1"))
	defer f.locks.Release("session-1")

	_, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "answer"))

	require.ErrorIs(t, err, ErrTurnInProgress)
	assert.Empty(t, f.provider.calls)
}

func TestSubmitAnswerReplaysCompletedQuestion(t *testing.T) {
	f := newCoachFixture(t)
	f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
		SessionId:       "session-1",
		WeekNumber:      1,
		CurrentQuestion: 2,
		Questions: map[int]entity.QuestionState{
			1: {Iteration: 1, Completed: true, Scenario: "SCENARIO_1"},
		},
	}

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "same answer again"))
	require.NoError(t, err)

	assert.True(t, res.IsComplete)
	assert.Equal(t, "SCENARIO_1", res.Scenario)
	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, 2, res.NextQuestion.Number)

	assert.Empty(t, f.provider.calls, "replay must not call the model")
	assert.Empty(t, f.store.answers, "replay must not write new ledger facts")
	assert.Zero(t, f.uow.begins)
}

func TestSubmitAnswerQuestionNotCurrent(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "reply")

	_, err := f.service.SubmitAnswer(context.Background(), submitRequest(2, "skipping ahead"))

	require.ErrorIs(t, err, ErrQuestionNotCurrent)
	assert.Empty(t, f.provider.calls)
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	f := newCoachFixture(t)

	_, err := f.service.SubmitAnswer(context.Background(), submitRequest(9, "answer"))

	require.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestSubmitAnswerCommitFailureLeavesLedgerUntouched(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "reply that will not land")
	f.uow.commitErr = errors.New("connection reset")

	_, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "my answer"))

	require.Error(t, err)
	assert.Empty(t, f.store.answers)
	assert.Empty(t, f.store.replies)
	assert.Empty(t, f.store.completions)
	assert.Empty(t, f.store.states)
	assert.Equal(t, 1, f.uow.rollbacks)
	assert.Empty(t, f.publisher.payloads, "nothing may be published for an uncommitted turn")
}

func TestSubmitAnswerLockedWeek(t *testing.T) {
	f := newCoachFixture(t)
	second := weekOneSnapshot()
	second.Week.Number = 2
	f.snapshots[2] = second

	request := submitRequest(1, "answer")
	request.WeekNumber = 2

	_, err := f.service.SubmitAnswer(context.Background(), request)

	require.ErrorIs(t, err, ErrWeekLocked)
	assert.Empty(t, f.provider.calls)
}

func TestSubmitAnswerUnlockedAfterPriorWeekComplete(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "Welcome to week two.")
	second := weekOneSnapshot()
	second.Week.Number = 2
	f.snapshots[2] = second
	f.store.completions = []*entity.CompletionRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1},
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 2},
	}

	request := submitRequest(1, "week two answer")
	request.WeekNumber = 2

	res, err := f.service.SubmitAnswer(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, res.IsComplete)
}

func TestSubmitAnswerValidationGatesCompletion(t *testing.T) {
	tests := []struct {
		name         string
		verdict      string
		wantComplete bool
	}{
		{name: "validated answer completes early", verdict: "COMPLETE: Yes\nMISSING: None", wantComplete: true},
		{name: "unvalidated answer iterates", verdict: "COMPLETE: No\nMISSING: a timeframe", wantComplete: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCoachFixture(t, "SCENARIO_2", "How will you measure it?", tt.verdict)
			snapshot := f.snapshots[1]
			snapshot.Questions[1].RequiresValidation = true
			snapshot.Templates = append(snapshot.Templates, entity.PromptTemplate{
				QuestionId: questionTwoId,
				Kind:       constant.PromptKindValidation,
				Text:       "Check whether the goal is specific.",
			})
			f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
				SessionId:       "session-1",
				WeekNumber:      1,
				CurrentQuestion: 2,
				Questions: map[int]entity.QuestionState{
					1: {Iteration: 1, Completed: true, Scenario: "SCENARIO_1"},
				},
			}

			res, err := f.service.SubmitAnswer(context.Background(), submitRequest(2, "I want to apply for two jobs."))
			require.NoError(t, err)

			assert.Equal(t, tt.wantComplete, res.IsComplete)
			require.Len(t, f.provider.calls, 3, "classifier, response, then validation")
		})
	}
}

func TestSubmitAnswerResolvesCrossQuestionPlaceholder(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "Love that goal.")
	f.store.answers = []*entity.AnswerRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1, Iteration: 1, Text: "naming my strengths"},
	}
	f.store.completions = []*entity.CompletionRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1},
	}
	f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
		SessionId:       "session-1",
		WeekNumber:      1,
		CurrentQuestion: 2,
		Questions: map[int]entity.QuestionState{
			1: {Iteration: 1, Completed: true, Scenario: "SCENARIO_1"},
		},
	}

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(2, "Apply for two jobs."))
	require.NoError(t, err)
	assert.True(t, res.IsComplete)

	require.Len(t, f.provider.calls, 2)
	assert.Contains(t, f.provider.calls[1].systemPrompt, "naming my strengths",
		"the earlier answer must flow into the response prompt")
}

func TestSubmitAnswerFinalQuestionReturnsOutro(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "A strong finish.")
	f.store.answers = []*entity.AnswerRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1, Iteration: 1, Text: "naming my strengths"},
	}
	f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
		SessionId:       "session-1",
		WeekNumber:      1,
		CurrentQuestion: 2,
		Questions: map[int]entity.QuestionState{
			1: {Iteration: 1, Completed: true, Scenario: "SCENARIO_1"},
		},
	}

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(2, "Apply for two jobs."))
	require.NoError(t, err)

	assert.True(t, res.IsComplete)
	assert.Nil(t, res.NextQuestion)
	assert.Equal(t, "That wraps up the week. Well done!", res.OutroMessage)
	assert.Len(t, f.store.completions, 1)
}

func TestSubmitAnswerStateKeepsAnswerReplyHistory(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_2", "Tell me more.", "SCENARIO_1", "Now that lands.")

	_, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "first attempt"))
	require.NoError(t, err)

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "second attempt"))
	require.NoError(t, err)
	assert.True(t, res.IsComplete)

	qs := f.store.states[stateKey("session-1", 1)].Question(1)
	assert.Equal(t, []string{"first attempt", "second attempt"}, qs.Answers)
	assert.Equal(t, []string{"Tell me more.", "Now that lands."}, qs.Replies)
	assert.Equal(t, 2, qs.Iteration)
	assert.Len(t, qs.Answers, qs.Iteration)
	assert.Len(t, qs.Replies, qs.Iteration)
}

func TestSubmitAnswerRewritesCompletionAfterStateLoss(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "Welcome back.")
	// A completion exists but the derived state row was lost; the rebuilt
	// turn re-records the question and updates the mark in place.
	f.store.completions = []*entity.CompletionRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1, Scenario: "SCENARIO_2", Iterations: 3},
	}

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "my takeaway, again"))
	require.NoError(t, err)
	assert.True(t, res.IsComplete)

	require.Len(t, f.store.completions, 1, "duplicate completion must update, not duplicate")
	assert.Equal(t, "SCENARIO_1", f.store.completions[0].Scenario)
	assert.Equal(t, 1, f.store.completions[0].Iterations)
}

func TestSubmitAnswerOutroResolvesPlaceholders(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "A strong finish.")
	f.snapshots[1].Week.OutroMessage = "Well done, {name}!"
	f.store.answers = []*entity.AnswerRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1, Iteration: 1, Text: "naming my strengths"},
	}
	f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
		SessionId:       "session-1",
		Name:            "Alex",
		WeekNumber:      1,
		CurrentQuestion: 2,
		Questions: map[int]entity.QuestionState{
			1: {Iteration: 1, Completed: true, Scenario: "SCENARIO_1"},
		},
	}

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(2, "Apply for two jobs."))
	require.NoError(t, err)

	assert.Equal(t, "Well done, Alex!", res.OutroMessage)
}

func TestSubmitAnswerOutroTemplateWinsOverWeekText(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "A strong finish.")
	f.snapshots[1].Templates = append(f.snapshots[1].Templates, entity.PromptTemplate{
		QuestionId: questionTwoId,
		Kind:       constant.PromptKindOutro,
		Text:       "You finished every question, {name}. See you next week.",
	})
	f.store.answers = []*entity.AnswerRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1, Iteration: 1, Text: "naming my strengths"},
	}
	f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
		SessionId:       "session-1",
		Name:            "Alex",
		WeekNumber:      1,
		CurrentQuestion: 2,
		Questions: map[int]entity.QuestionState{
			1: {Iteration: 1, Completed: true, Scenario: "SCENARIO_1"},
		},
	}

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(2, "Apply for two jobs."))
	require.NoError(t, err)

	assert.Equal(t, "You finished every question, Alex. See you next week.", res.OutroMessage)
}

func TestSubmitAnswerNextQuestionIncludesIntro(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "Great takeaway.")
	f.snapshots[1].Templates = append(f.snapshots[1].Templates, entity.PromptTemplate{
		QuestionId: questionTwoId,
		Kind:       constant.PromptKindIntro,
		Text:       "Next up, {name}, we set a goal.",
	})

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "I learned a lot."))
	require.NoError(t, err)

	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, 2, res.NextQuestion.Number)
	assert.Equal(t, "Next up, there, we set a goal.", res.NextQuestion.Intro)
}

func TestSubmitAnswerSkipsValidationWhenScenarioResolves(t *testing.T) {
	f := newCoachFixture(t, "SCENARIO_1", "Encouraging reply.")
	snapshot := f.snapshots[1]
	snapshot.Questions[0].RequiresValidation = true
	snapshot.Templates = append(snapshot.Templates, entity.PromptTemplate{
		QuestionId: questionOneId,
		Kind:       constant.PromptKindValidation,
		Text:       "Check whether the takeaway is specific.",
	})

	res, err := f.service.SubmitAnswer(context.Background(), submitRequest(1, "I learned to name my strengths."))
	require.NoError(t, err)

	assert.True(t, res.IsComplete)
	assert.Len(t, f.provider.calls, 2, "a resolved scenario must not trigger a validation call")
}

// --- StartWeek and GetNextQuestion -----------------------------------------

func TestStartWeekInitializesState(t *testing.T) {
	f := newCoachFixture(t)

	res, err := f.service.StartWeek(context.Background(), &dto.StartWeekRequest{
		SessionId:   "session-1",
		WeekNumber:  1,
		DisplayName: "Jordan",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.WeekNumber)
	assert.Equal(t, "Getting Started", res.Title)
	assert.Equal(t, "Welcome to week one.\n\nNice to meet you, Jordan.", res.WelcomeMessage)
	require.NotNil(t, res.Question)
	assert.Equal(t, 1, res.Question.Number)

	state := f.store.states[stateKey("session-1", 1)]
	require.NotNil(t, state)
	assert.Equal(t, "Jordan", state.Name)
	assert.Equal(t, 1, state.CurrentQuestion)
}

func TestStartWeekDefaultsDisplayName(t *testing.T) {
	f := newCoachFixture(t)

	res, err := f.service.StartWeek(context.Background(), &dto.StartWeekRequest{
		SessionId:  "session-1",
		WeekNumber: 1,
	})
	require.NoError(t, err)

	assert.Contains(t, res.WelcomeMessage, "Nice to meet you, there.")
}

func TestStartWeekUnknownWeek(t *testing.T) {
	f := newCoachFixture(t)

	_, err := f.service.StartWeek(context.Background(), &dto.StartWeekRequest{
		SessionId:  "session-1",
		WeekNumber: 7,
	})

	require.ErrorIs(t, err, ErrWeekNotFound)
}

func TestGetNextQuestion(t *testing.T) {
	f := newCoachFixture(t)

	res, err := f.service.GetNextQuestion(context.Background(), "session-1", 1)
	require.NoError(t, err)
	assert.False(t, res.WeekComplete)
	require.NotNil(t, res.Question)
	assert.Equal(t, 1, res.Question.Number)
	assert.Equal(t, "Nice to meet you, there.", res.Question.Intro)
}

func TestGetNextQuestionResolvesIntroForLaterQuestion(t *testing.T) {
	f := newCoachFixture(t)
	f.snapshots[1].Templates = append(f.snapshots[1].Templates, entity.PromptTemplate{
		QuestionId: questionTwoId,
		Kind:       constant.PromptKindIntro,
		Text:       "Time for your goal, {name}.",
	})
	f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
		SessionId:       "session-1",
		Name:            "Alex",
		WeekNumber:      1,
		CurrentQuestion: 2,
		Questions: map[int]entity.QuestionState{
			1: {Iteration: 1, Completed: true, Scenario: "SCENARIO_1"},
		},
	}

	res, err := f.service.GetNextQuestion(context.Background(), "session-1", 1)
	require.NoError(t, err)
	require.NotNil(t, res.Question)
	assert.Equal(t, 2, res.Question.Number)
	assert.Equal(t, "Time for your goal, Alex.", res.Question.Intro)
}

func TestGetNextQuestionCompletedWeek(t *testing.T) {
	f := newCoachFixture(t)
	f.store.states[stateKey("session-1", 1)] = &entity.ConversationState{
		SessionId:       "session-1",
		WeekNumber:      1,
		CurrentQuestion: 3,
		Questions: map[int]entity.QuestionState{
			1: {Iteration: 1, Completed: true},
			2: {Iteration: 2, Completed: true},
		},
	}

	res, err := f.service.GetNextQuestion(context.Background(), "session-1", 1)
	require.NoError(t, err)
	assert.True(t, res.WeekComplete)
	assert.Equal(t, "That wraps up the week. Well done!", res.OutroMessage)
	assert.Nil(t, res.Question)
}
