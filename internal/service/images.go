package service

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal/model"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	DefaultImagesBaseURL = "https://commons.wikimedia.org/w/api.php"
	DefaultImagesTimeout = 5 * time.Second

	// Images stored for each new word
	MaxWordImages = 4

	maxImagesBody = 4 << 20
	imageInfoProp = "timestamp|user|userid|comment|canonicaltitle|url|size|dimensions|sha1|mime|thumbmime|mediatype|bitdepth"
)

// ImageSource finds illustrations for a word
type ImageSource interface {
	Images(ctx context.Context, word string) ([]model.Image, error)
}

type ImagesOpts struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// ImageClient queries the Wikimedia Commons API for the images on a word's
// page. Calls share the lookup's timeout and breaker behavior.
type ImageClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	cb      *gobreaker.CircuitBreaker
}

type commonsResponse struct {
	Query *struct {
		Pages map[string]commonsPage `json:"pages"`
	} `json:"query"`
}

type commonsPage struct {
	Title     string `json:"title"`
	ImageInfo []struct {
		URL            string `json:"url"`
		DescriptionURL string `json:"descriptionurl"`
		Comment        string `json:"comment"`
	} `json:"imageinfo"`
}

func NewImageClient(opts ImagesOpts) *ImageClient {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultImagesBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultImagesTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}

	return &ImageClient{
		baseURL: opts.BaseURL,
		timeout: opts.Timeout,
		client:  opts.Client,
		cb:      gobreaker.NewCircuitBreaker(breakerSettings("ImageLookup")),
	}
}

// Images returns at most MaxWordImages images for word, ordered by page id
func (c *ImageClient) Images(ctx context.Context, word string) ([]model.Image, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.cb.Execute(func() (any, error) {
		return c.do(ctx, word)
	})
	if err != nil {
		return nil, classifyLookupError(err)
	}

	return res.([]model.Image), nil
}

func (c *ImageClient) do(ctx context.Context, word string) ([]model.Image, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("generator", "images")
	q.Set("prop", "imageinfo")
	q.Set("gimlimit", "500")
	q.Set("redirects", "1")
	q.Set("titles", word)
	q.Set("iiprop", imageInfoProp)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request, %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return nil, &upstreamError{status: resp.StatusCode}
	}

	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("Image search returned no results",
			zap.String("word", word),
			zap.Int("status", resp.StatusCode))
		return []model.Image{}, nil
	}

	var body commonsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxImagesBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode image response, %w", err)
	}

	return imagesFromPages(body), nil
}

func imagesFromPages(body commonsResponse) []model.Image {
	images := []model.Image{}
	if body.Query == nil {
		return images
	}

	keys := make([]string, 0, len(body.Query.Pages))
	for k := range body.Query.Pages {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ai, _ := strconv.Atoi(a)
		bi, _ := strconv.Atoi(b)
		return cmp.Compare(ai, bi)
	})

	for _, k := range keys {
		if len(images) == MaxWordImages {
			break
		}

		page := body.Query.Pages[k]
		if len(page.ImageInfo) == 0 || page.ImageInfo[0].URL == "" {
			continue
		}

		info := page.ImageInfo[0]
		comment := info.Comment
		if comment == "" {
			comment = page.Title
		}

		images = append(images, model.Image{
			URL:            info.URL,
			DescriptionURL: info.DescriptionURL,
			Comment:        comment,
		})
	}

	return images
}
