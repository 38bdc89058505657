package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserWordConflict(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "hank")
	uw := mustUserWord(t, s, u.ID, "ocean")

	res, err := s.CreateUserWord(ctx, u.ID, uw.WordID)
	require.NoError(t, err)
	assert.Equal(t, StatusConflict, res.Status)
	assert.Equal(t, msgAlreadyAdded, res.Message)
	assert.Equal(t, uw.ID, res.Value.ID)
	require.NotNil(t, res.Value.Word)
	assert.Equal(t, "ocean", res.Value.Word.Word)
}

func TestCreateUserWordMissingReferences(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	w := mustWord(t, s, "field")

	res, err := s.CreateUserWord(ctx, 5, w.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "User with ID 5 does not exist.", res.Message)

	u := mustUser(t, s, "ivy")
	res, err = s.CreateUserWord(ctx, u.ID, 123)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
	assert.Equal(t, "Word with ID 123 does not exist.", res.Message)
}

func TestUserWordsAreScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := mustUser(t, s, "jack")
	stranger := mustUser(t, s, "kate")
	uw := mustUserWord(t, s, owner.ID, "bridge")

	res, err := s.GetUserWord(ctx, stranger.ID, uw.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)

	res, err = s.SetLearned(ctx, stranger.ID, uw.ID, true)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)

	res, err = s.SetLearned(ctx, owner.ID, uw.ID, true)
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.True(t, res.Value.Learned)

	// Setting the same value again still succeeds
	res, err = s.SetLearned(ctx, owner.ID, uw.ID, true)
	require.NoError(t, err)
	assert.True(t, res.OK())
}

func TestDeleteUserWordRemovesLinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "liam")
	uw := mustUserWord(t, s, u.ID, "forest")
	wr := mustReminder(t, s, u.ID)
	_, err := s.Link(ctx, uw.ID, wr.ID)
	require.NoError(t, err)

	res, err := s.DeleteUserWord(ctx, u.ID, uw.ID)
	require.NoError(t, err)
	require.True(t, res.OK())

	var n int64
	require.NoError(t, s.db.Model(&model.UserWordReminderLink{}).Count(&n).Error)
	assert.Zero(t, n)

	got, err := s.GetWordReminder(ctx, u.ID, wr.ID)
	require.NoError(t, err)
	require.True(t, got.OK())
	assert.Empty(t, got.Value.UserWords)

	res, err = s.DeleteUserWord(ctx, u.ID, uw.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, res.Status)
}

func TestDeleteUserWordsByUserEmpty(t *testing.T) {
	s := newTestStore(t)

	u := mustUser(t, s, "mia")

	deleted, err := s.DeleteUserWordsByUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotNil(t, deleted)
	assert.Empty(t, deleted)
}

func seedUserWords(t *testing.T, s *Store, userID uint, words ...string) []*model.UserWord {
	t.Helper()

	out := make([]*model.UserWord, len(words))
	for i, w := range words {
		out[i] = mustUserWord(t, s, userID, w)

		// Distinct, increasing creation times
		at := time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC)
		require.NoError(t, s.db.Model(&model.UserWord{}).Where("id = ?", out[i].ID).Update("created_at", at).Error)
	}

	return out
}

func TestListUserWordsPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "nora")
	words := make([]string, 10)
	for i := range words {
		words[i] = fmt.Sprintf("word%02d", i)
	}
	seedUserWords(t, s, u.ID, words...)

	q := pagination.NewQuery().WithWindow(pagination.Window{Page: 2, Limit: 4})

	list, err := s.ListUserWords(ctx, u.ID, ListUserWordsOptions{Query: q})
	require.NoError(t, err)
	assert.Equal(t, int64(10), list.TotalRows)
	require.Len(t, list.Items, 4)
	assert.Equal(t, &pagination.Page{Page: 1, Limit: 4}, list.Previous)
	assert.Equal(t, &pagination.Page{Page: 3, Limit: 4}, list.Next)

	// Default order is newest first
	assert.Equal(t, "word05", list.Items[0].Word.Word)
	assert.Len(t, list.Items[0].Word.Meanings, 1)

	all, err := s.ListUserWords(ctx, u.ID, ListUserWordsOptions{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 10)
	assert.Nil(t, all.Previous)
	assert.Nil(t, all.Next)
}

func TestListUserWordsFiltersAndSort(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "omar")
	other := mustUser(t, s, "pia")
	uws := seedUserWords(t, s, u.ID, "banana", "apple", "cherry", "grape_fruit")
	mustUserWord(t, s, other.ID, "apricot")

	_, err := s.SetLearned(ctx, u.ID, uws[1].ID, true)
	require.NoError(t, err)

	learned := true
	list, err := s.ListUserWords(ctx, u.ID, ListUserWordsOptions{Learned: &learned})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "apple", list.Items[0].Word.Word)

	list, err = s.ListUserWords(ctx, u.ID, ListUserWordsOptions{Search: "AP"})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)

	// Underscore is matched literally
	list, err = s.ListUserWords(ctx, u.ID, ListUserWordsOptions{Search: "e_f"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "grape_fruit", list.Items[0].Word.Word)

	order := &pagination.Order{Key: pagination.WordsWord, Direction: pagination.Ascending}
	list, err = s.ListUserWords(ctx, u.ID, ListUserWordsOptions{Query: pagination.NewQuery().WithOrder(order)})
	require.NoError(t, err)
	require.Len(t, list.Items, 4)
	got := []string{}
	for _, uw := range list.Items {
		got = append(got, uw.Word.Word)
	}
	assert.Equal(t, []string{"apple", "banana", "cherry", "grape_fruit"}, got)
}

func TestListUserWordsEmpty(t *testing.T) {
	s := newTestStore(t)

	u := mustUser(t, s, "quinn")

	q := pagination.NewQuery().WithWindow(pagination.Window{Page: 1, Limit: 8})
	list, err := s.ListUserWords(context.Background(), u.ID, ListUserWordsOptions{Query: q})
	require.NoError(t, err)
	assert.NotNil(t, list.Items)
	assert.Empty(t, list.Items)
	assert.Zero(t, list.TotalRows)
	assert.Nil(t, list.Previous)
	assert.Nil(t, list.Next)
}

func TestSelectUserWords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := mustUser(t, s, "rita")
	uws := seedUserWords(t, s, u.ID, "one", "two", "three", "four")

	_, err := s.SetLearned(ctx, u.ID, uws[3].ID, true)
	require.NoError(t, err)

	newest, err := s.SelectUserWords(ctx, u.ID, 2, false, model.SortModeNewest)
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, uws[2].ID, newest[0].ID)
	assert.Equal(t, uws[1].ID, newest[1].ID)

	oldest, err := s.SelectUserWords(ctx, u.ID, 2, false, model.SortModeOldest)
	require.NoError(t, err)
	require.Len(t, oldest, 2)
	assert.Equal(t, uws[0].ID, oldest[0].ID)

	random, err := s.SelectUserWords(ctx, u.ID, 10, false, model.SortModeRandom)
	require.NoError(t, err)
	assert.Len(t, random, 3)

	learned, err := s.SelectUserWords(ctx, u.ID, 10, true, model.SortModeNewest)
	require.NoError(t, err)
	require.Len(t, learned, 1)
	assert.Equal(t, uws[3].ID, learned[0].ID)

	_, err = s.SelectUserWords(ctx, u.ID, 1, false, model.SortMode("sideways"))
	assert.Error(t, err)
}
