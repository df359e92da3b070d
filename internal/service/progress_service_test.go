package service

import (
	"context"
	"testing"

	"driven-coach-be/internal/entity"
	"driven-coach-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressFixture struct {
	service IProgressService
	store   *fakeStore
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()

	store := newFakeStore()
	second := weekOneSnapshot()
	second.Week.Number = 2
	second.Week.Title = "Building Momentum"

	svc := NewProgressService(
		&fakeFactory{uow: &fakeUnitOfWork{store: store}},
		&fakeContentService{snapshots: map[int]*entity.WeekSnapshot{
			1: weekOneSnapshot(),
			2: second,
		}},
		memory.NewProgressRepository(),
		noopLogger{},
	)

	return &progressFixture{service: svc, store: store}
}

func TestGetWeekProgress(t *testing.T) {
	f := newProgressFixture(t)
	f.store.completions = []*entity.CompletionRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1},
	}

	week, err := f.service.GetWeekProgress(context.Background(), "session-1", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, week.WeekNumber)
	assert.True(t, week.Unlocked)
	assert.False(t, week.Completed)
	assert.Equal(t, 2, week.QuestionCount)
	assert.Equal(t, []int{1}, week.QuestionsCompleted)
}

func TestGetWeekProgressUnknownWeek(t *testing.T) {
	f := newProgressFixture(t)

	_, err := f.service.GetWeekProgress(context.Background(), "session-1", 9)

	require.ErrorIs(t, err, ErrWeekNotFound)
}

func TestCheckUnlock(t *testing.T) {
	f := newProgressFixture(t)

	first, err := f.service.CheckUnlock(context.Background(), "session-1", 1)
	require.NoError(t, err)
	assert.True(t, first.Unlocked, "week 1 is always unlocked")

	second, err := f.service.CheckUnlock(context.Background(), "session-1", 2)
	require.NoError(t, err)
	assert.False(t, second.Unlocked, "week 2 stays locked while week 1 is incomplete")
}

func TestCheckUnlockAfterPriorWeekComplete(t *testing.T) {
	f := newProgressFixture(t)
	f.store.completions = []*entity.CompletionRecord{
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 1},
		{SessionId: "session-1", WeekNumber: 1, QuestionNumber: 2},
	}

	second, err := f.service.CheckUnlock(context.Background(), "session-1", 2)
	require.NoError(t, err)
	assert.True(t, second.Unlocked)
}
