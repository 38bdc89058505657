package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultLookupBaseURL = "https://api.dictionaryapi.dev/api/v2"
	DefaultLookupTimeout = 5 * time.Second

	// Largest lookup response body that will be decoded
	maxLookupBody = 2 << 20
)

var (
	ErrLookupTimeout     = errors.New("definition lookup timed out")
	ErrLookupUnavailable = errors.New("definition lookup is temporarily unavailable")
	ErrLookupFailed      = errors.New("definition lookup failed")
)

// Dictionary resolves a word into its definitions
type Dictionary interface {
	Lookup(ctx context.Context, word string) ([]model.DictionaryEntry, error)
}

// NotAWordError is returned when the dictionary does not know a word. It is
// a business outcome, not an infrastructure failure.
type NotAWordError struct {
	Word       string `json:"word"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message"`
	Resolution string `json:"resolution,omitempty"`
}

func (e *NotAWordError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("%q is not a word", e.Word)
}

// LookupResult is what gets cached for a word: either its entries or the
// reason it is not a word
type LookupResult struct {
	Entries  []model.DictionaryEntry `json:"entries,omitempty"`
	NotAWord *NotAWordError          `json:"notAWord,omitempty"`
}

func (r *LookupResult) unwrap() ([]model.DictionaryEntry, error) {
	if r.NotAWord != nil {
		return nil, r.NotAWord
	}

	return r.Entries, nil
}

// upstreamError is a response the breaker counts as a failure
type upstreamError struct {
	status int
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("lookup responded with status %d", e.status)
}

type LookupOpts struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Cache   LookupCache
}

// LookupClient fetches definitions over HTTP. Each call is bounded by a
// timeout and guarded by a circuit breaker; identical concurrent lookups
// share one request and results are cached.
type LookupClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	cache   LookupCache
	cb      *gobreaker.CircuitBreaker
	sf      singleflight.Group
}

// breakerSettings trips once at least half of five or more requests failed.
// A caller giving up on its own request says nothing about the upstream, so
// it is not counted.
func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			zap.L().Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}
}

func NewLookupClient(opts LookupOpts) *LookupClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultLookupBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultLookupTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}

	return &LookupClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		client:  opts.Client,
		cache:   opts.Cache,
		cb:      gobreaker.NewCircuitBreaker(breakerSettings("DefinitionLookup")),
	}
}

// Lookup returns the dictionary entries for word. An unknown word yields a
// *NotAWordError; infrastructure failures yield one of the ErrLookup errors.
func (l *LookupClient) Lookup(ctx context.Context, word string) ([]model.DictionaryEntry, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, &NotAWordError{Word: word, Message: "Word is required."}
	}

	if l.cache != nil {
		cached, found, err := l.cache.Get(ctx, word)
		if err != nil {
			zap.L().Warn("Failed to read lookup cache", zap.String("word", word), zap.Error(err))
		} else if found {
			return cached.unwrap()
		}
	}

	// The shared request outlives any single caller and is bounded by the
	// client timeout only
	flight := l.sf.DoChan(word, func() (any, error) {
		return l.fetch(context.WithoutCancel(ctx), word)
	})

	var res *LookupResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-flight:
		if r.Err != nil {
			return nil, r.Err
		}
		res = r.Val.(*LookupResult)
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, word, res); err != nil {
			zap.L().Warn("Failed to write lookup cache", zap.String("word", word), zap.Error(err))
		}
	}

	return res.unwrap()
}

func (l *LookupClient) fetch(ctx context.Context, word string) (*LookupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	res, err := l.cb.Execute(func() (any, error) {
		return l.do(ctx, word)
	})
	if err != nil {
		return nil, classifyLookupError(err)
	}

	return res.(*LookupResult), nil
}

func (l *LookupClient) do(ctx context.Context, word string) (*LookupResult, error) {
	endpoint := l.baseURL + "/entries/en/" + url.PathEscape(word)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request, %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLookupBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response, %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return nil, &upstreamError{status: resp.StatusCode}
	}

	if resp.StatusCode != http.StatusOK {
		notAWord := &NotAWordError{Word: word}
		if err := json.Unmarshal(body, notAWord); err != nil || notAWord.Message == "" {
			notAWord.Message = fmt.Sprintf("Sorry pal, we couldn't find definitions for the word %q.", word)
		}
		notAWord.Word = word

		return &LookupResult{NotAWord: notAWord}, nil
	}

	var entries []model.DictionaryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response, %w", err)
	}

	if len(entries) == 0 {
		return &LookupResult{NotAWord: &NotAWordError{
			Word:    word,
			Message: fmt.Sprintf("Sorry pal, we couldn't find definitions for the word %q.", word),
		}}, nil
	}

	return &LookupResult{Entries: entries}, nil
}

func classifyLookupError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrLookupUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w, %v", ErrLookupTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w, %v", ErrLookupTimeout, err)
	}

	return fmt.Errorf("%w, %v", ErrLookupFailed, err)
}
