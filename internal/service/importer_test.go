package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/pagination"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
		err   error
	}{
		{"single column", "apple\nbanana\n", []string{"apple", "banana"}, nil},
		{"many columns", "apple, banana\ncherry", []string{"apple", "banana", "cherry"}, nil},
		{"byte order mark", "\xEF\xBB\xBFapple,banana", []string{"apple", "banana"}, nil},
		{"blank fields", "apple,,  ,banana\n\n", []string{"apple", "banana"}, nil},
		{"quoted", `"apple pie",banana`, []string{"apple pie", "banana"}, nil},
		{"empty file", "", nil, ErrCSVEmpty},
		{"only blanks", " , \n,,\n", nil, ErrCSVEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.input))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("\"apple,banana"))

	var parseErr *CSVParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestImportReportMessage(t *testing.T) {
	tests := []struct {
		name   string
		report ImportReport
		want   string
	}{
		{"all created", ImportReport{Total: 3, Created: 3}, "3 words have been created."},
		{"some existing", ImportReport{Total: 3, Created: 1}, "You have already added 2 of these words. 1 words have been created."},
		{
			"invalid",
			ImportReport{Total: 4, Created: 2, Invalid: []string{"qq", "zz"}},
			"You have value(s) in your CSV file that are not words. Please change them to valid word(s) and re-import your words: qq and zz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Message())
		})
	}
}

func TestImportWord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dict := newStubDictionary("lantern")
	imp := NewImporter(s, dict, 1)

	u := mustUser(t, s, "alma")

	res, err := imp.ImportWord(ctx, u.ID, "Lantern")
	require.NoError(t, err)
	require.True(t, res.OK())
	require.NotNil(t, res.Value.Word)
	assert.Equal(t, "lantern", res.Value.Word.Word)
	assert.Len(t, res.Value.Word.Meanings, 1)

	// A stored word is not looked up again
	res, err = imp.ImportWord(ctx, u.ID, "lantern")
	require.NoError(t, err)
	assert.Equal(t, store.StatusConflict, res.Status)
	assert.Equal(t, 1, dict.callCount())

	_, err = imp.ImportWord(ctx, u.ID, "xyzzy")
	var notAWord *NotAWordError
	assert.ErrorAs(t, err, &notAWord)
}

func TestImportCSVEmptyMakesNoLookups(t *testing.T) {
	s := newTestStore(t)
	dict := newStubDictionary()
	imp := NewImporter(s, dict, 4)

	u := mustUser(t, s, "bo")

	report, err := imp.ImportCSV(context.Background(), u.ID, strings.NewReader(" \n"))
	assert.ErrorIs(t, err, ErrCSVEmpty)
	assert.Zero(t, report.Total)
	assert.Zero(t, dict.callCount())
}

func TestImportCSVUnknownUser(t *testing.T) {
	s := newTestStore(t)
	dict := newStubDictionary("apple")
	imp := NewImporter(s, dict, 1)

	_, err := imp.ImportCSV(context.Background(), 42, strings.NewReader("apple"))
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Zero(t, dict.callCount())
}

func TestImportCSVCollectsInvalidInFileOrder(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			s := newTestStore(t)
			ctx := context.Background()
			dict := newStubDictionary("apple", "banana", "cherry")
			imp := NewImporter(s, dict, workers)

			u := mustUser(t, s, "cass")

			csv := "apple,zzq\nbanana,qqx\ncherry,aaz"
			report, err := imp.ImportCSV(ctx, u.ID, strings.NewReader(csv))
			require.NoError(t, err)
			assert.Equal(t, 6, report.Total)
			assert.Equal(t, 3, report.Created)
			assert.Equal(t, []string{"zzq", "qqx", "aaz"}, report.Invalid)
			assert.True(t, report.HasInvalid())

			// Valid tokens are committed even though some were invalid
			list, err := s.ListUserWords(ctx, u.ID, store.ListUserWordsOptions{})
			require.NoError(t, err)
			assert.Equal(t, int64(3), list.TotalRows)
		})
	}
}

func TestImportCSVReportsExistingWords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dict := newStubDictionary("apple", "banana")
	imp := NewImporter(s, dict, 1)

	u := mustUser(t, s, "dora")

	_, err := imp.ImportWord(ctx, u.ID, "apple")
	require.NoError(t, err)

	report, err := imp.ImportCSV(ctx, u.ID, strings.NewReader("apple\nbanana"))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, "You have already added 1 of these words. 1 words have been created.", report.Message())
}

func TestImportCSVStopsOnLookupFailure(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dict := newStubDictionary("apple", "cherry")
	dict.failing["banana"] = ErrLookupUnavailable
	imp := NewImporter(s, dict, 1)

	u := mustUser(t, s, "eli")

	report, err := imp.ImportCSV(ctx, u.ID, strings.NewReader("apple\nbanana\ncherry"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLookupUnavailable))
	assert.Equal(t, 1, report.Created)

	// Rows written before the failure stay written
	q := pagination.NewQuery()
	list, err := s.ListUserWords(ctx, u.ID, store.ListUserWordsOptions{Query: q})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "apple", list.Items[0].Word.Word)
}

func TestImportCSVNormalizesTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	dict := newStubDictionary("serendipity")
	imp := NewImporter(s, dict, 1)

	u := mustUser(t, s, "fay")

	report, err := imp.ImportCSV(ctx, u.ID, strings.NewReader("Serendipity,Qwzx"))
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Created)
	// Invalid tokens are reported as typed
	assert.Equal(t, []string{"Qwzx"}, report.Invalid)
	assert.Equal(t, []string{"serendipity", "qwzx"}, dict.calls)
}

func TestImportAttachesImages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	images := &stubImages{}
	imp := NewImporter(s, newStubDictionary("lantern"), 1).WithImages(images)

	u := mustUser(t, s, "gus")
	other := mustUser(t, s, "hal")

	res, err := imp.ImportWord(ctx, u.ID, "lantern")
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Len(t, res.Value.Word.Images, 2)
	assert.Equal(t, "https://upload.test/lantern-1.jpg", res.Value.Word.Images[0].URL)

	// Images belong to the word, a second user does not fetch them again
	res, err = imp.ImportWord(ctx, other.ID, "lantern")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Len(t, res.Value.Word.Images, 2)
	assert.Equal(t, []string{"lantern"}, images.words)
}

func TestImportImageFailureKeepsWord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	images := &stubImages{err: ErrLookupUnavailable}
	imp := NewImporter(s, newStubDictionary("lantern"), 1).WithImages(images)

	u := mustUser(t, s, "ivy")

	res, err := imp.ImportWord(ctx, u.ID, "lantern")
	require.NoError(t, err)
	require.True(t, res.OK())
	assert.Empty(t, res.Value.Word.Images)
}
