package store

import (
	"context"
	"sync"
	"testing"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "dave")
	uw := mustUserWord(t, s, u.ID, "tree")
	wr := mustReminder(t, s, u.ID)

	first, err := s.Link(ctx, uw.ID, wr.ID)
	require.NoError(t, err)
	require.True(t, first.OK())

	second, err := s.Link(ctx, uw.ID, wr.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConflict, second.Status)
	assert.Equal(t, first.Value.ID, second.Value.ID)
}

func TestLinkConcurrentCallsInsertOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "erin")
	uw := mustUserWord(t, s, u.ID, "cloud")
	wr := mustReminder(t, s, u.ID)

	var wg sync.WaitGroup
	errs := make(chan error, 8)

	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Link(ctx, uw.ID, wr.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var n int64
	require.NoError(t, s.db.Model(&model.UserWordReminderLink{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestLinkMissingReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "frank")
	uw := mustUserWord(t, s, u.ID, "rain")

	res, err := s.Link(ctx, 999, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "User word with ID 999 does not exist.", res.Message)

	res, err = s.Link(ctx, uw.ID, 77)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "Word reminder with ID 77 does not exist.", res.Message)
}

func TestUnlinkAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "gina")
	a := mustUserWord(t, s, u.ID, "sun")
	b := mustUserWord(t, s, u.ID, "moon")
	wr := mustReminder(t, s, u.ID)

	for _, uw := range []*model.UserWord{a, b} {
		_, err := s.Link(ctx, uw.ID, wr.ID)
		require.NoError(t, err)
	}

	deleted, err := s.UnlinkAllByReminder(ctx, wr.ID)
	require.NoError(t, err)
	assert.Len(t, deleted, 2)

	deleted, err = s.UnlinkAllByReminder(ctx, wr.ID)
	require.NoError(t, err)
	assert.NotNil(t, deleted)
	assert.Empty(t, deleted)

	_, err = s.Link(ctx, a.ID, wr.ID)
	require.NoError(t, err)

	deleted, err = s.UnlinkAllByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, a.ID, deleted[0].UserWordID)
}
