package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/nakkarenukadevi/mbbs-ui/internal/logger"
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
)

// StudentsPath is the search endpoint of the students API
const StudentsPath = "/api/students"

// maxBodyBytes bounds how much of an upstream response is read
const maxBodyBytes = 16 << 20

// FailureKind classifies why a fetch failed
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureStatus  FailureKind = "status"
	FailureDecode  FailureKind = "decode"
)

// FetchError is returned for every failed search
type FetchError struct {
	Kind       FailureKind
	StatusCode int // set for FailureStatus
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FailureStatus:
		return fmt.Sprintf("students API returned status %d", e.StatusCode)
	default:
		return fmt.Sprintf("students API %s error: %v", e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StudentRepository queries the remote students API
type StudentRepository struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// Options configures the repository transport
type Options struct {
	Timeout    time.Duration // 0 = no client timeout
	RetryMax   int           // 0 = a single attempt
	RetryWait  time.Duration // fixed wait between attempts, 0 = library backoff
	HTTPClient *http.Client  // optional base client
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(baseURL string, opts Options, log *zap.Logger) *StudentRepository {
	base := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		base = &copied
	}
	base.Timeout = opts.Timeout

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = base
	retryClient.RetryMax = opts.RetryMax
	if opts.RetryWait > 0 {
		retryClient.RetryWaitMin = opts.RetryWait
		retryClient.RetryWaitMax = opts.RetryWait
	}
	retryClient.Logger = logger.NewLeveled(log.Named("upstream"))
	// Hand non-2xx responses back instead of turning them into errors
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &StudentRepository{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: retryClient.StandardClient(),
		log:        log,
	}
}

// searchResponse is the wire layout of a search response.
// Data stays raw so a null or missing list can be told apart from a bad one.
type searchResponse struct {
	Data  json.RawMessage `json:"data"`
	Total *int            `json:"total"`
}

// Search retrieves one page of records matching criteria
func (r *StudentRepository) Search(ctx context.Context, criteria models.FilterCriteria, query models.PageQuery) (models.ResultPage, error) {
	endpoint, err := r.searchURL(query)
	if err != nil {
		return models.ResultPage{}, &FetchError{Kind: FailureNetwork, Err: err}
	}

	body, err := json.Marshal(criteria)
	if err != nil {
		return models.ResultPage{}, &FetchError{Kind: FailureNetwork, Err: fmt.Errorf("failed to encode criteria: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return models.ResultPage{}, &FetchError{Kind: FailureNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return models.ResultPage{}, &FetchError{Kind: FailureNetwork, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.ResultPage{}, &FetchError{Kind: FailureNetwork, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	// Check if response status is not successful (2xx)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.log.Debug("Students API error response",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(bodyBytes), 512)))
		return models.ResultPage{}, &FetchError{Kind: FailureStatus, StatusCode: resp.StatusCode}
	}

	page, err := decodeSearchResponse(bodyBytes)
	if err != nil {
		return models.ResultPage{}, &FetchError{Kind: FailureDecode, Err: err}
	}
	return page, nil
}

func (r *StudentRepository) searchURL(query models.PageQuery) (string, error) {
	u, err := url.Parse(r.baseURL + StudentsPath)
	if err != nil {
		return "", fmt.Errorf("invalid API base URL: %w", err)
	}
	q := u.Query()
	q.Set("pageNumber", strconv.Itoa(query.PageNumber))
	q.Set("pageSize", strconv.Itoa(query.PageSize))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func decodeSearchResponse(body []byte) (models.ResultPage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.ResultPage{}, errors.New("empty response body")
	}

	var wire searchResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return models.ResultPage{}, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	page := models.ResultPage{Rows: []models.Record{}}
	if raw := bytes.TrimSpace(wire.Data); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if err := json.Unmarshal(raw, &page.Rows); err != nil {
			return models.ResultPage{}, fmt.Errorf("invalid data list: %w", err)
		}
	}

	// A missing total means a single page
	if wire.Total != nil {
		if *wire.Total < 0 {
			return models.ResultPage{}, fmt.Errorf("negative total %d", *wire.Total)
		}
		page.Total = *wire.Total
	} else {
		page.Total = len(page.Rows)
	}
	return page, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
