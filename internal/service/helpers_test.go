package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/testutil"

	"github.com/stretchr/testify/require"
)

// stubDictionary knows the words in known and fails with err for the words
// in failing. Every other word is not a word.
type stubDictionary struct {
	mu      sync.Mutex
	known   map[string]bool
	failing map[string]error
	calls   []string
}

func newStubDictionary(words ...string) *stubDictionary {
	d := &stubDictionary{known: map[string]bool{}, failing: map[string]error{}}
	for _, w := range words {
		d.known[w] = true
	}

	return d
}

func (d *stubDictionary) Lookup(_ context.Context, word string) ([]model.DictionaryEntry, error) {
	d.mu.Lock()
	d.calls = append(d.calls, word)
	d.mu.Unlock()

	if err, ok := d.failing[word]; ok {
		return nil, err
	}

	if !d.known[word] {
		return nil, &NotAWordError{Word: word, Message: fmt.Sprintf("%s is not a word", word)}
	}

	return []model.DictionaryEntry{{
		Word: word,
		Meanings: []model.DictionaryMeaning{{
			PartOfSpeech: "noun",
			Definitions:  []model.DictionaryDefinition{{Definition: "meaning of " + word}},
		}},
	}}, nil
}

func (d *stubDictionary) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.calls)
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(testutil.SetupTestDB(t))
}

func mustUser(t *testing.T, s *store.Store, username string) *model.User {
	t.Helper()

	res, err := s.CreateUser(context.Background(), username, "hash")
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	return res.Value
}

func mustUserWord(t *testing.T, s *store.Store, userID uint, word string) *model.UserWord {
	t.Helper()

	w, err := s.CreateWord(context.Background(), &model.Word{Word: word})
	require.NoError(t, err)
	require.True(t, w.OK(), w.Message)

	res, err := s.CreateUserWord(context.Background(), userID, w.Value.ID)
	require.NoError(t, err)
	require.True(t, res.OK(), res.Message)

	return res.Value
}

// stubImages returns two images per word, or err when set
type stubImages struct {
	mu    sync.Mutex
	err   error
	words []string
}

func (s *stubImages) Images(_ context.Context, word string) ([]model.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = append(s.words, word)
	if s.err != nil {
		return nil, s.err
	}

	return []model.Image{
		{URL: "https://upload.test/" + word + "-1.jpg", Comment: word + " one"},
		{URL: "https://upload.test/" + word + "-2.jpg", Comment: word + " two"},
	}, nil
}
