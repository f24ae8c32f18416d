package cli

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/tbourn/krishi-mitra/internal/domain"
	"github.com/tbourn/krishi-mitra/internal/enrich"
	"github.com/tbourn/krishi-mitra/internal/i18n"
	"github.com/tbourn/krishi-mitra/internal/services"
	"github.com/tbourn/krishi-mitra/internal/suggestions"
)

// APIClient calls the non-advisory endpoints of the server.
type APIClient struct {
	client *resty.Client
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// SuggestionsResult is the body of GET /suggestions.
type SuggestionsResult struct {
	suggestions.Catalog
	Query   string                   `json:"query,omitempty"`
	Results []services.SuggestionHit `json:"results,omitempty"`
}

// NewAPIClient targets baseURL, e.g. "http://localhost:8080/api/v1". Failed
// requests are retried twice; assistance requests carry an Idempotency-Key so
// a retried submission is not filed twice.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "krishi-cli/1.0").
		SetRetryCount(2).
		SetRetryWaitTime(300 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})
	return &APIClient{client: c}
}

func (c *APIClient) do(req *resty.Request, method, path string) error {
	var apiErr apiError
	resp, err := req.SetError(&apiErr).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Code: apiErr.Code, Message: apiErr.Message}
	}
	return nil
}

// Suggestions fetches the catalog in lang and, when q is set, search hits.
func (c *APIClient) Suggestions(ctx context.Context, lang i18n.Language, q string) (SuggestionsResult, error) {
	var out SuggestionsResult
	req := c.client.R().SetContext(ctx).SetResult(&out).SetQueryParam("lang", lang.String())
	if q != "" {
		req.SetQueryParam("q", q)
	}
	err := c.do(req, http.MethodGet, "/suggestions")
	return out, err
}

// Context fetches location and weather for the coordinates.
func (c *APIClient) Context(ctx context.Context, lat, lon float64) (enrich.Context, error) {
	var out enrich.Context
	req := c.client.R().SetContext(ctx).SetResult(&out).SetQueryParams(map[string]string{
		"lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"lon": strconv.FormatFloat(lon, 'f', -1, 64),
	})
	err := c.do(req, http.MethodGet, "/context")
	return out, err
}

// RequestAssistance files a call-back request.
func (c *APIClient) RequestAssistance(ctx context.Context, phone, issue string, lang i18n.Language) (*domain.AssistanceRequest, error) {
	var out struct {
		Request *domain.AssistanceRequest `json:"request"`
	}
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", uuid.NewString()).
		SetBody(map[string]string{"phone": phone, "issue": issue, "language": lang.String()}).
		SetResult(&out)
	if err := c.do(req, http.MethodPost, "/assistance"); err != nil {
		return nil, err
	}
	return out.Request, nil
}
