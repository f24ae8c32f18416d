package enrich

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Config configures the upstream clients.
type Config struct {
	GeocodeURL      string
	WeatherURL      string
	UserAgent       string
	Timeout         time.Duration
	GeocodeRPS      float64
	BreakerFailures int
	BreakerReset    time.Duration
}

// NewService builds a Service on Nominatim and Open-Meteo.
func NewService(cfg Config) *Service {
	return &Service{
		Geo:     NewNominatim(cfg),
		Weather: NewOpenMeteo(cfg),
	}
}

// Nominatim is a reverse geocoder. Requests are throttled to GeocodeRPS as
// the public instance's usage policy asks.
type Nominatim struct {
	client  *resty.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
	} `json:"address"`
	Error string `json:"error"`
}

func NewNominatim(cfg Config) *Nominatim {
	rps := cfg.GeocodeRPS
	if rps <= 0 {
		rps = 1
	}
	return &Nominatim{
		client:  newRestyClient(cfg.GeocodeURL, cfg.UserAgent, cfg.Timeout),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		breaker: newBreaker("nominatim", cfg.BreakerFailures, cfg.BreakerReset),
	}
}

// Reverse returns "city, state" for the coordinates. City falls back to town
// and then village.
func (n *Nominatim) Reverse(ctx context.Context, lat, lon float64) (label string, err error) {
	defer func() { observe("nominatim", err) }()
	if err := n.limiter.Wait(ctx); err != nil {
		return "", err
	}
	res, err := n.breaker.Execute(func() (interface{}, error) {
		var out nominatimResponse
		resp, err := n.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"lat":    formatCoord(lat),
				"lon":    formatCoord(lon),
				"format": "json",
			}).
			SetResult(&out).
			Get("/reverse")
		if err != nil {
			return nil, fmt.Errorf("nominatim request failed: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("nominatim error (%d)", resp.StatusCode())
		}
		if out.Error != "" {
			return nil, fmt.Errorf("nominatim: %s", out.Error)
		}
		return out, nil
	})
	if err != nil {
		return "", err
	}
	return placeLabel(res.(nominatimResponse)), nil
}

func placeLabel(r nominatimResponse) string {
	a := r.Address
	place := a.City
	if place == "" {
		place = a.Town
	}
	if place == "" {
		place = a.Village
	}
	if a.State == "" {
		return place
	}
	return place + ", " + a.State
}

func newRestyClient(baseURL, ua string, timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if ua != "" {
		c.SetHeader("User-Agent", ua)
	}
	return c
}

func formatCoord(f float64) string { return strconv.FormatFloat(f, 'f', 6, 64) }
