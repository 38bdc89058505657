package service

import (
	"context"
	"testing"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/pagination"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposerExplicit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := NewComposer(s)

	u := mustUser(t, s, "fay")
	a := mustUserWord(t, s, u.ID, "north")
	b := mustUserWord(t, s, u.ID, "south")

	res, err := c.Explicit(ctx, u.ID, ExplicitReminder{
		Reminder:    "0 9 * * *",
		IsActive:    true,
		Finish:      time.Now().Add(time.Hour),
		UserWordIDs: []uint{a.ID, b.ID, a.ID},
	})
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)
	assert.Len(t, res.Value.UserWords, 2)
}

func TestComposerExplicitMissingUserWord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := NewComposer(s)

	u := mustUser(t, s, "gus")
	other := mustUser(t, s, "hal")
	mine := mustUserWord(t, s, u.ID, "east")
	theirs := mustUserWord(t, s, other.ID, "west")

	res, err := c.Explicit(ctx, u.ID, ExplicitReminder{
		Reminder:    "0 9 * * *",
		Finish:      time.Now().Add(time.Hour),
		UserWordIDs: []uint{mine.ID, theirs.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, store.StatusNotFound, res.Status)
	assert.Equal(t, store.EntityUserWord.Missing(theirs.ID), res.Message)

	// Nothing was written
	list, err := s.ListWordRemindersByUser(ctx, u.ID, pagination.NewQuery())
	require.NoError(t, err)
	assert.Zero(t, list.TotalRows)
}

func TestComposerAuto(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := NewComposer(s)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	u := mustUser(t, s, "ida")
	var ids []uint
	for _, w := range []string{"alpha", "beta", "gamma"} {
		ids = append(ids, mustUserWord(t, s, u.ID, w).ID)
	}

	res, err := c.Auto(ctx, u.ID, AutoReminder{
		Reminder:  "*/30 * * * *",
		IsActive:  true,
		SortMode:  model.SortModeOldest,
		WordCount: 2,
		Duration:  int64((2 * time.Hour) / time.Millisecond),
	})
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)
	assert.True(t, now.Add(2*time.Hour).Equal(res.Value.Finish))

	got := []uint{}
	for _, uw := range res.Value.UserWords {
		got = append(got, uw.ID)
	}
	assert.ElementsMatch(t, ids[:2], got)

	_, err = c.Auto(ctx, u.ID, AutoReminder{SortMode: "sideways"})
	assert.Error(t, err)
}

func TestComposerAutoWithoutWords(t *testing.T) {
	s := newTestStore(t)
	c := NewComposer(s)

	u := mustUser(t, s, "jo")

	res, err := c.Auto(context.Background(), u.ID, AutoReminder{
		Reminder:  "0 * * * *",
		SortMode:  model.SortModeRandom,
		WordCount: 5,
		Duration:  60_000,
	})
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.NotNil(t, res.Value.UserWords)
	assert.Empty(t, res.Value.UserWords)
}

func TestComposerUpdateReplacesLinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	c := NewComposer(s)

	u := mustUser(t, s, "kai")
	a := mustUserWord(t, s, u.ID, "sun")
	b := mustUserWord(t, s, u.ID, "moon")

	created, err := c.Explicit(ctx, u.ID, ExplicitReminder{
		Reminder:    "0 9 * * *",
		IsActive:    true,
		Finish:      time.Now().Add(time.Hour),
		UserWordIDs: []uint{a.ID},
	})
	require.NoError(t, err)
	require.True(t, created.OK())

	updated, err := c.Update(ctx, u.ID, created.Value.ID, ExplicitReminder{
		Reminder:    "0 10 * * *",
		Finish:      time.Now().Add(2 * time.Hour),
		UserWordIDs: []uint{b.ID},
	})
	require.NoError(t, err)
	require.True(t, updated.OK(), updated.Message)
	assert.Equal(t, "0 10 * * *", updated.Value.Reminder)
	assert.False(t, updated.Value.IsActive)
	require.Len(t, updated.Value.UserWords, 1)
	assert.Equal(t, b.ID, updated.Value.UserWords[0].ID)

	missing, err := c.Update(ctx, u.ID, created.Value.ID+50, ExplicitReminder{Finish: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, store.StatusNotFound, missing.Status)
}

func TestReminderSweeperDisabled(t *testing.T) {
	done := make(chan struct{})
	go func() {
		ReminderSweeper(context.Background(), 0, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper with a zero interval should return immediately")
	}
}

func TestReminderSweeperDeactivates(t *testing.T) {
	s := newTestStore(t)
	u := mustUser(t, s, "lou")

	res, err := s.CreateWordReminder(context.Background(), u.ID, store.WordReminderFields{
		Reminder: "* * * * *",
		IsActive: true,
		Finish:   time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ReminderSweeper(ctx, 10*time.Millisecond, s)

	assert.Eventually(t, func() bool {
		got, err := s.GetWordReminder(context.Background(), u.ID, res.Value.ID)
		return err == nil && got.OK() && !got.Value.IsActive
	}, 2*time.Second, 20*time.Millisecond)
}
