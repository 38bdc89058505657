package store

import (
	"context"
	"testing"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autoFields() AutoWordReminderFields {
	return AutoWordReminderFields{
		Reminder:  "0 8 * * *",
		IsActive:  true,
		SortMode:  model.SortModeNewest,
		WordCount: 3,
		Duration:  3_600_000,
	}
}

func TestCreateAutoWordReminderOnePerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "abby")

	res, err := s.CreateAutoWordReminder(ctx, u.ID, autoFields())
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Equal(t, u.ID, res.Value.UserID)
	assert.Equal(t, 3, res.Value.WordCount)

	f := autoFields()
	f.WordCount = 9
	again, err := s.CreateAutoWordReminder(ctx, u.ID, f)
	require.NoError(t, err)
	assert.Equal(t, StatusConflict, again.Status)
	assert.Equal(t, msgAutoReminderExists, again.Message)
	assert.Equal(t, res.Value.ID, again.Value.ID)
	assert.Equal(t, 3, again.Value.WordCount)
}

func TestAutoWordReminderLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "ben")

	res, err := s.GetAutoWordReminderByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)

	created, err := s.CreateAutoWordReminder(ctx, u.ID, autoFields())
	require.NoError(t, err)
	id := created.Value.ID

	f := autoFields()
	f.SortMode = model.SortModeRandom
	f.HasLearnedWords = true
	updated, err := s.UpdateAutoWordReminder(ctx, u.ID, id, f)
	require.NoError(t, err)
	require.True(t, updated.OK())
	assert.Equal(t, model.SortModeRandom, updated.Value.SortMode)
	assert.True(t, updated.Value.HasLearnedWords)

	other := mustUser(t, s, "cleo")
	res, err = s.UpdateAutoWordReminder(ctx, other.ID, id, f)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)

	deleted, err := s.DeleteAutoWordReminder(ctx, u.ID, id)
	require.NoError(t, err)
	require.True(t, deleted.OK())
	assert.Equal(t, id, deleted.Value.ID)

	res, err = s.GetAutoWordReminderByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
}
