package enrich

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// OpenMeteo fetches current weather.
type OpenMeteo struct {
	client  *resty.Client
	breaker *gobreaker.CircuitBreaker
}

type openMeteoResponse struct {
	CurrentWeather *Weather `json:"current_weather"`
}

func NewOpenMeteo(cfg Config) *OpenMeteo {
	return &OpenMeteo{
		client:  newRestyClient(cfg.WeatherURL, cfg.UserAgent, cfg.Timeout),
		breaker: newBreaker("open-meteo", cfg.BreakerFailures, cfg.BreakerReset),
	}
}

// Current returns the current_weather block of the forecast endpoint.
func (o *OpenMeteo) Current(ctx context.Context, lat, lon float64) (w *Weather, err error) {
	defer func() { observe("open-meteo", err) }()
	res, err := o.breaker.Execute(func() (interface{}, error) {
		var out openMeteoResponse
		resp, err := o.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"latitude":        formatCoord(lat),
				"longitude":       formatCoord(lon),
				"current_weather": "true",
			}).
			SetResult(&out).
			Get("/v1/forecast")
		if err != nil {
			return nil, fmt.Errorf("open-meteo request failed: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("open-meteo error (%d)", resp.StatusCode())
		}
		if out.CurrentWeather == nil {
			return nil, fmt.Errorf("open-meteo: no current_weather in response")
		}
		return out.CurrentWeather, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*Weather), nil
}
