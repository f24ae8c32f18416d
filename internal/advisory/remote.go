package advisory

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteAdvisor is the client-side Advisor: it posts requests to the server's
// advisory endpoint.
type RemoteAdvisor struct {
	client *resty.Client
}

// NewRemoteAdvisor targets baseURL, e.g. "http://localhost:8080/api/v1".
func NewRemoteAdvisor(baseURL string, timeout time.Duration) *RemoteAdvisor {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "krishi-cli/1.0").
		SetHeader("Content-Type", "application/json")
	return &RemoteAdvisor{client: c}
}

type remoteError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RequestAdvice implements Advisor.
func (r *RemoteAdvisor) RequestAdvice(ctx context.Context, req AdviceRequest) (string, error) {
	if req.Empty() {
		return "", ErrInvalidRequest
	}
	body := CropsRequest{PromptText: req.Prompt, Language: string(req.Language)}
	if req.Image != nil {
		body.ImageData = EncodeDataURL(req.Image)
	}

	var out CropsResponse
	var apiErr remoteError
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&apiErr).
		Post("/crops")
	if err != nil {
		return "", &GatewayError{Message: "advisory service unreachable", Err: err}
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusBadRequest && apiErr.Code == "bad_request" {
			return "", ErrInvalidRequest
		}
		msg := apiErr.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", &GatewayError{Message: msg, Status: resp.StatusCode()}
	}
	return out.Advice, nil
}
