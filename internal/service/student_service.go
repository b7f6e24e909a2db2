package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/nakkarenukadevi/mbbs-ui/internal/metrics"
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
	"github.com/nakkarenukadevi/mbbs-ui/internal/viewer"
)

// Searcher retrieves one page of student records
type Searcher interface {
	Search(ctx context.Context, criteria models.FilterCriteria, query models.PageQuery) (models.ResultPage, error)
}

// StudentService handles business logic for student searches
type StudentService struct {
	repo    Searcher
	group   singleflight.Group
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewStudentService creates a new student service
func NewStudentService(repo Searcher, m *metrics.Metrics, log *zap.Logger) *StudentService {
	return &StudentService{repo: repo, metrics: m, log: log}
}

// Search retrieves a page of records. Identical searches in flight at the
// same time share a single upstream call. The shared call is detached from
// any one caller's cancellation; each caller stops waiting when its own ctx
// is done.
func (s *StudentService) Search(ctx context.Context, criteria models.FilterCriteria, query models.PageQuery) (models.ResultPage, error) {
	query = query.Normalize()
	key, err := searchKey(criteria, query)
	if err != nil {
		return models.ResultPage{}, err
	}

	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.search(detached, criteria, query)
	})

	select {
	case <-ctx.Done():
		return models.ResultPage{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			s.log.Debug("Coalesced student search", zap.String("key", key))
		}
		if res.Err != nil {
			return models.ResultPage{}, res.Err
		}
		return res.Val.(models.ResultPage), nil
	}
}

// Fetch performs a viewer request and tags the result with its generation
func (s *StudentService) Fetch(ctx context.Context, req viewer.Request) viewer.Result {
	page, err := s.Search(ctx, req.Criteria, req.Query)
	return viewer.Result{Generation: req.Generation, Page: page, Err: err}
}

func (s *StudentService) search(ctx context.Context, criteria models.FilterCriteria, query models.PageQuery) (models.ResultPage, error) {
	start := time.Now()
	page, err := s.repo.Search(ctx, criteria, query)
	elapsed := time.Since(start)
	s.metrics.FetchDuration.Observe(elapsed.Seconds())

	fields := []zap.Field{
		zap.Int("pageNumber", query.PageNumber),
		zap.Int("pageSize", query.PageSize),
		zap.Duration("latency", elapsed),
	}

	if err != nil {
		s.metrics.FetchTotal.WithLabelValues(metrics.OutcomeError).Inc()
		s.log.Warn("Student search failed", append(fields, zap.Error(err))...)
		return models.ResultPage{}, err
	}

	s.metrics.FetchRows.Observe(float64(len(page.Rows)))
	if page.IsEmpty() {
		s.metrics.FetchTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
	} else {
		s.metrics.FetchTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	}
	s.log.Info("Student search completed", append(fields,
		zap.Int("rows", len(page.Rows)),
		zap.Int("total", page.Total))...)
	return page, nil
}

func searchKey(criteria models.FilterCriteria, query models.PageQuery) (string, error) {
	b, err := json.Marshal(criteria)
	if err != nil {
		return "", fmt.Errorf("failed to encode criteria: %w", err)
	}
	return strconv.Itoa(query.PageNumber) + "/" + strconv.Itoa(query.PageSize) + "/" + string(b), nil
}
