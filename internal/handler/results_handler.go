package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nakkarenukadevi/mbbs-ui/internal/labels"
	"github.com/nakkarenukadevi/mbbs-ui/internal/metrics"
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
	"github.com/nakkarenukadevi/mbbs-ui/internal/navstate"
	"github.com/nakkarenukadevi/mbbs-ui/internal/service"
	"github.com/nakkarenukadevi/mbbs-ui/internal/viewer"
	"github.com/nakkarenukadevi/mbbs-ui/pkg/response"
)

// ResultsHandler handles HTTP requests for the result viewer
type ResultsHandler struct {
	service *service.StudentService
	codec   *navstate.Codec
	labels  *labels.Formatter
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewResultsHandler creates a new results handler
func NewResultsHandler(svc *service.StudentService, codec *navstate.Codec, formatter *labels.Formatter, m *metrics.Metrics, log *zap.Logger) *ResultsHandler {
	return &ResultsHandler{service: svc, codec: codec, labels: formatter, metrics: m, log: log}
}

// ShowResults handles GET /filteredData
// Without navigation state the visitor is sent back to the form and nothing
// is fetched.
func (h *ResultsHandler) ShowResults(c *gin.Context) {
	v := viewer.New()
	req := v.Mount(h.criteria(c), bindPageQuery(c))
	if req == nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	res := h.service.Fetch(c.Request.Context(), *req)
	if res.Err != nil {
		_ = c.Error(res.Err)
	}
	v.Resolve(res)

	st := v.State()
	status := http.StatusOK
	if st.Status == viewer.StatusError {
		status = http.StatusBadGateway
	}
	c.HTML(status, "results.tmpl", newResultsView(st, h.labels))
}

// GetResults handles GET /api/v1/results
func (h *ResultsHandler) GetResults(c *gin.Context) {
	criteria := h.criteria(c)
	if criteria == nil {
		response.Conflict(c, "Navigation state missing, submit the form first")
		return
	}

	query := bindPageQuery(c).Normalize()
	page, err := h.service.Search(c.Request.Context(), *criteria, query)
	if err != nil {
		response.BadGateway(c, MsgFetchFailed, err)
		return
	}

	columns := page.Columns()
	response.Success(c, gin.H{
		"data":       page.Rows,
		"total":      page.Total,
		"page":       query.PageNumber,
		"pageSize":   query.PageSize,
		"totalPages": page.TotalPages(query.PageSize),
		"columns":    columns,
		"labels":     h.labels.FormatAll(columns),
	})
}

// criteria decodes the navigation cookie, returning nil when it is absent
// or cannot be trusted. A bad cookie is cleared.
func (h *ResultsHandler) criteria(c *gin.Context) *models.FilterCriteria {
	token, _ := c.Cookie(navstate.CookieName)
	criteria, err := h.codec.Decode(token)
	if err == nil {
		return criteria
	}

	reason := metrics.ReasonInvalid
	if errors.Is(err, navstate.ErrMissing) {
		reason = metrics.ReasonMissing
	} else {
		h.log.Info("Discarding navigation state", zap.Error(err))
		c.SetCookie(navstate.CookieName, "", -1, "/", "", c.Request.TLS != nil, true)
	}
	h.metrics.NavRejected.WithLabelValues(reason).Inc()
	return nil
}

// bindPageQuery reads pageNumber and pageSize; malformed values fall back
// to the defaults when the viewer normalizes them
func bindPageQuery(c *gin.Context) models.PageQuery {
	var query models.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return models.DefaultPageQuery()
	}
	return query
}
