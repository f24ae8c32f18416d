// Package handlers implements the advisory API endpoints: crop advice, local
// context, suggestions, market prices and assistance requests.
//
// Every failure leaves the server as an ErrorResponse whose code is one of the
// constants in errors.go; clients such as the krishi CLI branch on the code and
// show the message. Success bodies are endpoint-specific structs.
//
//	HTTP/1.1 502 Bad Gateway
//	{
//	  "request_id": "0b6c1e2a-7d0e-4f57-9a63-1f0f3e7d2b11",
//	  "code": "advice_failed",
//	  "message": "advisory model timed out"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/krishi-mitra/internal/http/middleware"
)

// ErrorResponse is the error body of every endpoint.
type ErrorResponse struct {
	// Echo of X-Request-ID
	RequestID string `json:"request_id,omitempty" example:"0b6c1e2a-7d0e-4f57-9a63-1f0f3e7d2b11"`
	// See errors.go
	Code string `json:"code" example:"bad_request"`
	// Safe to show to the farmer
	Message string `json:"message" example:"promptText or imageData is required"`
}

// fail aborts with an ErrorResponse. Upstream outages (502, 503, 504: the
// advisory model or an enrichment service) are logged at warn; any other 5xx
// at error.
func fail(c *gin.Context, status int, code, msg string) {
	switch {
	case status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout:
		lg := middleware.LoggerFrom(c)
		lg.Warn().Int("status", status).Str("code", code).Str("route", c.FullPath()).Msg(msg)
	case status >= http.StatusInternalServerError:
		lg := middleware.LoggerFrom(c)
		lg.Error().Int("status", status).Str("code", code).Str("route", c.FullPath()).Msg(msg)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail lets the router answer 404/405/413 with the same envelope.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func badRequest(c *gin.Context, msg string) {
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, msg)
}

// unavailable answers 503 for an endpoint whose service is not wired, e.g.
// /crops without GEMINI_API_KEY.
func unavailable(c *gin.Context, what string) {
	fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, what+" is not available")
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// created answers 201 with Location set to the new resource, relative to the
// matched route (POST /assistance → /assistance/<id>).
func created(c *gin.Context, id string, body any) {
	c.Header("Location", c.FullPath()+"/"+id)
	c.JSON(http.StatusCreated, body)
}
