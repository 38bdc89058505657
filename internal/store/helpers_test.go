package store

import (
	"context"
	"testing"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/testutil"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(testutil.SetupTestDB(t))
}

func mustUser(t *testing.T, s *Store, username string) *model.User {
	t.Helper()

	res, err := s.CreateUser(context.Background(), username, "hash")
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	return res.Value
}

func mustWord(t *testing.T, s *Store, word string) *model.Word {
	t.Helper()

	res, err := s.CreateWord(context.Background(), &model.Word{
		Word: word,
		Meanings: []model.Meaning{{
			PartOfSpeech: "noun",
			Definitions:  []model.Definition{{Definition: "a definition of " + word}},
		}},
		Phonetics: []model.Phonetic{{Text: "/" + word + "/"}},
	})
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	return res.Value
}

func mustUserWord(t *testing.T, s *Store, userID uint, word string) *model.UserWord {
	t.Helper()

	w := mustWord(t, s, word)
	res, err := s.CreateUserWord(context.Background(), userID, w.ID)
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	return res.Value
}

func mustReminder(t *testing.T, s *Store, userID uint) *model.WordReminder {
	t.Helper()

	res, err := s.CreateWordReminder(context.Background(), userID, WordReminderFields{
		Reminder: "*/5 * * * *",
		IsActive: true,
		Finish:   time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	return res.Value
}
