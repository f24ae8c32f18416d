// Package enrich provides best-effort location and weather context for a
// coordinate pair: reverse geocoding through Nominatim and current weather
// through Open-Meteo. Failures never propagate; they degrade to an empty
// result.
package enrich

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog"
)

// Location is a coordinate pair with its human readable label
// ("city, state"); Label is empty when the lookup failed.
type Location struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// Weather is the current weather at a location.
type Weather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time,omitempty"`
}

// Clear reports clear or mainly clear sky (WMO codes 0-2).
func (w Weather) Clear() bool { return w.WeatherCode < 3 }

// Context is the combined enrichment for a coordinate pair.
type Context struct {
	Location Location `json:"location"`
	Weather  *Weather `json:"weather,omitempty"`
}

// Geocoder resolves coordinates to a label.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (string, error)
}

// WeatherProvider returns the current weather.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*Weather, error)
}

// ValidCoordinates reports whether lat/lon are finite and in range.
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Service combines both lookups.
type Service struct {
	Geo     Geocoder
	Weather WeatherProvider
}

// Lookup runs both lookups concurrently. It never fails: an unavailable
// upstream leaves its part of the result empty.
func (s *Service) Lookup(ctx context.Context, lat, lon float64) Context {
	out := Context{Location: Location{Lat: lat, Lon: lon}}
	if !ValidCoordinates(lat, lon) {
		return out
	}
	log := zerolog.Ctx(ctx)

	var wg sync.WaitGroup
	if s.Geo != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			label, err := s.Geo.Reverse(ctx, lat, lon)
			if err != nil {
				log.Warn().Err(err).Msg("reverse geocoding failed")
				return
			}
			out.Location.Label = label
		}()
	}
	if s.Weather != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := s.Weather.Current(ctx, lat, lon)
			if err != nil {
				log.Warn().Err(err).Msg("weather lookup failed")
				return
			}
			out.Weather = w
		}()
	}
	wg.Wait()
	return out
}
