package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/http/middleware"
	"github.com/tbourn/krishi-mitra/internal/services"
)

// PostAssistanceRequest is the JSON payload for requesting a call back.
type PostAssistanceRequest struct {
	Phone    string `json:"phone"    example:"+91 98470 12345"`
	Issue    string `json:"issue"    example:"Brown spots spreading on paddy leaves"`
	Language string `json:"language" example:"ml"`
}

// AssistanceResponse wraps a stored assistance request.
type AssistanceResponse struct {
	Request *domain.AssistanceRequest `json:"request"`
}

// PostAssistance godoc
// @ID          postAssistance
// @Summary     Request human assistance
// @Description Files a call-back request with an agricultural officer. Supports idempotent retries via the Idempotency-Key header: a replay returns the original request with 200.
// @Tags        Assistance
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                          false  "Idempotency key for safe retries"
// @Param       body             body    handlers.PostAssistanceRequest  true   "Phone number and issue"
//
// @Success     201  {object} handlers.AssistanceResponse
// @Success     200  {object} handlers.AssistanceResponse "Idempotent replay"
// @Failure     400  {object} handlers.ErrorResponse "Invalid phone or empty issue"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /assistance [post]
func (h *Handlers) PostAssistance(c *gin.Context) {
	if h.assistSvc == nil {
		unavailable(c, "assistance")
		return
	}

	var body PostAssistanceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	if key == "" {
		key = strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
	}

	req, replayed, err := h.assistSvc.Submit(c.Request.Context(), services.AssistanceInput{
		Phone:    body.Phone,
		Issue:    body.Issue,
		Language: body.Language,
	}, key)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPhone),
			errors.Is(err, services.ErrEmptyIssue),
			errors.Is(err, services.ErrIssueTooLong):
			badRequest(c, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not store assistance request")
		}
		return
	}

	if replayed {
		c.Header("Idempotent-Replay", "true")
		ok(c, http.StatusOK, AssistanceResponse{Request: req})
		return
	}
	created(c, req.ID, AssistanceResponse{Request: req})
}

// GetAssistance godoc
// @ID          getAssistance
// @Summary     Get an assistance request
// @Tags        Assistance
// @Produce     json
//
// @Param       id   path  string  true  "Request ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.AssistanceResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /assistance/{id} [get]
func (h *Handlers) GetAssistance(c *gin.Context) {
	if h.assistSvc == nil {
		unavailable(c, "assistance")
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		badRequest(c, "id must be a UUID")
		return
	}
	req, err := h.assistSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAssistanceNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load assistance request")
		return
	}
	ok(c, http.StatusOK, AssistanceResponse{Request: req})
}
