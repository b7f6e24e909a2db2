package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nakkarenukadevi/mbbs-ui/internal/form"
	"github.com/nakkarenukadevi/mbbs-ui/internal/metrics"
	"github.com/nakkarenukadevi/mbbs-ui/internal/navstate"
	"github.com/nakkarenukadevi/mbbs-ui/pkg/response"
)

// MsgInvalidSelection is shown when a posted choice is not a known option
const MsgInvalidSelection = "Please choose from the listed options"

// FormHandler handles HTTP requests for the query builder
type FormHandler struct {
	codec   *navstate.Codec
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewFormHandler creates a new form handler
func NewFormHandler(codec *navstate.Codec, m *metrics.Metrics, log *zap.Logger) *FormHandler {
	return &FormHandler{codec: codec, metrics: m, log: log}
}

// ShowForm handles GET /
// Criteria from an earlier submission prefill the form.
func (h *FormHandler) ShowForm(c *gin.Context) {
	state := form.NewState()
	if token, err := c.Cookie(navstate.CookieName); err == nil {
		if criteria, err := h.codec.Decode(token); err == nil {
			state = form.FromCriteria(*criteria)
		}
	}
	c.HTML(http.StatusOK, "form.tmpl", newFormView(state, ""))
}

// Submit handles POST /
func (h *FormHandler) Submit(c *gin.Context) {
	var sub form.Submission
	if err := c.ShouldBind(&sub); err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusBadRequest, "form.tmpl", newFormView(form.NewState(), MsgInvalidSelection))
		return
	}

	state := sub.State()
	criteria, err := state.Submit()
	if err != nil {
		h.metrics.SubmitTotal.WithLabelValues(metrics.OutcomeBlocked).Inc()
		message := ""
		var verr *form.ValidationError
		if !errors.As(err, &verr) {
			message = MsgInvalidSelection
			h.log.Debug("Rejected form submission", zap.Error(err))
		}
		c.HTML(http.StatusUnprocessableEntity, "form.tmpl", newFormView(state, message))
		return
	}

	token, err := h.codec.Encode(criteria)
	if err != nil {
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "form.tmpl", newFormView(state, "Something went wrong, please try again"))
		return
	}

	h.metrics.SubmitTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(navstate.CookieName, token, int(h.codec.TTL().Seconds()), "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusSeeOther, ResultsPath)
}

type scoreCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// ValidateScore handles POST /validate/score
func (h *FormHandler) ValidateScore(c *gin.Context) {
	score, ok := c.GetPostForm("score")
	if !ok {
		response.BadRequest(c, "score is required")
		return
	}
	_, err := form.ValidateScore(score)

	var verr *form.ValidationError
	if errors.As(err, &verr) {
		response.Success(c, scoreCheck{Valid: false, Message: verr.Message})
		return
	}
	response.Success(c, scoreCheck{Valid: true})
}
