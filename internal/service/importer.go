package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const MsgCSVEmpty = "0 words have been created because the CSV file is empty."

var (
	ErrCSVEmpty     = errors.New("csv file is empty")
	ErrUserNotFound = errors.New("user does not exist")

	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// CSVParseError carries the parser's own message for a malformed file
type CSVParseError struct {
	Err error
}

func (e *CSVParseError) Error() string {
	return e.Err.Error()
}

func (e *CSVParseError) Unwrap() error {
	return e.Err
}

// ParseCSV flattens every non-empty field of every record into a token list
// in file order. A file without tokens yields ErrCSVEmpty.
func ParseCSV(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	tokens := []string{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &CSVParseError{Err: err}
		}

		for _, field := range record {
			if field = strings.TrimSpace(field); field != "" {
				tokens = append(tokens, field)
			}
		}
	}

	if len(tokens) == 0 {
		return nil, ErrCSVEmpty
	}

	return tokens, nil
}

type tokenOutcome int

const (
	outcomeSkipped tokenOutcome = iota
	outcomeCreated
	outcomeExisting
	outcomeInvalid
)

// ImportReport summarizes a CSV import. Invalid keeps file order.
type ImportReport struct {
	Total   int
	Created int
	Invalid []string
}

func (r ImportReport) HasInvalid() bool {
	return len(r.Invalid) > 0
}

func (r ImportReport) Message() string {
	if r.HasInvalid() {
		return "You have value(s) in your CSV file that are not words. Please change them to valid word(s) and re-import your words: " +
			util.JoinConjunction(r.Invalid)
	}

	if r.Created < r.Total {
		return fmt.Sprintf("You have already added %d of these words. %d words have been created.", r.Total-r.Created, r.Created)
	}

	return fmt.Sprintf("%d words have been created.", r.Created)
}

// Importer adds words to a user's dictionary, looking up definitions for
// words the store has not seen yet
type Importer struct {
	store   *store.Store
	dict    Dictionary
	images  ImageSource
	workers int
}

// NewImporter creates an importer. workers above 1 process CSV tokens
// concurrently; otherwise they are processed one after another.
func NewImporter(s *store.Store, dict Dictionary, workers int) *Importer {
	return &Importer{
		store:   s,
		dict:    dict,
		workers: workers,
	}
}

// WithImages makes the importer attach images from src to every word it
// creates
func (i *Importer) WithImages(src ImageSource) *Importer {
	i.images = src
	return i
}

// ImportWord adds a single word. An unknown word returns a *NotAWordError.
// A word the user already has comes back with a Conflict status.
func (i *Importer) ImportWord(ctx context.Context, userID uint, word string) (store.Result[*model.UserWord], error) {
	return i.importToken(ctx, userID, word)
}

// ImportCSV runs every token of a CSV file through the same pipeline as
// ImportWord. Tokens that are not words are collected in the report and do
// not stop the import. A lookup infrastructure error stops it; rows written
// before that stay written and the partial report is returned with the error.
func (i *Importer) ImportCSV(ctx context.Context, userID uint, r io.Reader) (ImportReport, error) {
	tokens, err := ParseCSV(r)
	if err != nil {
		return ImportReport{}, err
	}

	found, err := i.store.Exists(ctx, store.EntityUser, userID)
	if err != nil {
		return ImportReport{}, err
	}
	if !found {
		return ImportReport{}, ErrUserNotFound
	}

	outcomes := make([]tokenOutcome, len(tokens))

	err = i.run(ctx, len(tokens), func(ctx context.Context, idx int) error {
		res, err := i.importToken(ctx, userID, tokens[idx])
		if err != nil {
			var notAWord *NotAWordError
			if errors.As(err, &notAWord) {
				outcomes[idx] = outcomeInvalid
				return nil
			}

			return err
		}

		switch res.Status {
		case store.StatusOK:
			outcomes[idx] = outcomeCreated
		case store.StatusConflict:
			outcomes[idx] = outcomeExisting
		default:
			return ErrUserNotFound
		}

		return nil
	})

	report := ImportReport{Total: len(tokens)}
	for idx, o := range outcomes {
		switch o {
		case outcomeCreated:
			report.Created++
		case outcomeInvalid:
			report.Invalid = append(report.Invalid, tokens[idx])
		}
	}

	zap.L().Debug("CSV import finished",
		zap.Uint("user_id", userID),
		zap.Int("tokens", report.Total),
		zap.Int("created", report.Created),
		zap.Int("invalid", len(report.Invalid)),
		zap.Error(err))

	return report, err
}

func (i *Importer) run(ctx context.Context, n int, fn func(ctx context.Context, idx int) error) error {
	if i.workers <= 1 {
		for idx := range n {
			if err := fn(ctx, idx); err != nil {
				return err
			}
		}

		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for idx := range n {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			return fn(gctx, idx)
		})
	}

	return g.Wait()
}

// importToken resolves a token to a stored word, looking it up when needed,
// and adds it to the user's dictionary
func (i *Importer) importToken(ctx context.Context, userID uint, token string) (store.Result[*model.UserWord], error) {
	token = strings.ToLower(strings.TrimSpace(token))

	got, err := i.store.GetWordByWord(ctx, token)
	if err != nil {
		return store.Result[*model.UserWord]{}, err
	}

	word := got.Value
	if !got.OK() {
		entries, err := i.dict.Lookup(ctx, token)
		if err != nil {
			return store.Result[*model.UserWord]{}, err
		}

		created, err := i.store.CreateWord(ctx, model.NewWord(entries))
		if err != nil {
			return store.Result[*model.UserWord]{}, err
		}

		word = created.Value
		if created.OK() {
			i.attachImages(ctx, word)
		}
	}

	return i.store.CreateUserWord(ctx, userID, word.ID)
}

// attachImages stores the images of a newly created word. Failures are logged
// and leave the word without images.
func (i *Importer) attachImages(ctx context.Context, word *model.Word) {
	if i.images == nil {
		return
	}

	images, err := i.images.Images(ctx, word.Word)
	if err != nil {
		zap.L().Warn("Failed to fetch word images", zap.String("word", word.Word), zap.Error(err))
		return
	}

	stored, err := i.store.AddImages(ctx, word.ID, images)
	if err != nil {
		zap.L().Error("Failed to store word images", zap.Uint("word_id", word.ID), zap.Error(err))
		return
	}

	word.Images = stored
}
