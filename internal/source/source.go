// Package source is the flight record source used by the synthesizer. It
// combines the AeroAPI and AVWX clients with the local record cache and
// absorbs their failures: callers always get a possibly empty result.
package source

import (
	"context"
	"log/slog"
	"strings"

	"atcdel/internal/database"
	"atcdel/internal/metrics"
	"atcdel/internal/models"
)

// FlightsAPI is the subset of the AeroAPI client used here
type FlightsAPI interface {
	Departures(ctx context.Context, icao string, number int, trafficType string) ([]models.Departure, error)
	Operator(ctx context.Context, icao string) (models.Operator, error)
	AircraftType(ctx context.Context, aircraftType string) (models.AircraftType, error)
}

// WeatherAPI is the subset of the AVWX client used here
type WeatherAPI interface {
	RawMETAR(ctx context.Context, icao string) (string, error)
}

// Config wires the collaborators of a Source. Any of them may be nil.
type Config struct {
	Flights  FlightsAPI
	Weather  WeatherAPI
	Cache    database.DepartureRepository
	UseCache bool // read departures from the cache instead of AeroAPI
	Metrics  *metrics.Collector
}

// Source answers record requests on a best-effort basis
type Source struct {
	flights  FlightsAPI
	weather  WeatherAPI
	cache    database.DepartureRepository
	useCache bool
	metrics  *metrics.Collector
}

func New(cfg Config) *Source {
	return &Source{
		flights:  cfg.Flights,
		weather:  cfg.Weather,
		cache:    cfg.Cache,
		useCache: cfg.UseCache,
		metrics:  cfg.Metrics,
	}
}

// FetchDepartures returns up to count departures from origin, or fewer
// when the source has less to offer or fails
func (s *Source) FetchDepartures(ctx context.Context, origin string, count int, filter models.DepartureFilter) []models.Departure {
	if count <= 0 {
		return nil
	}

	if s.useCache {
		if s.cache == nil {
			slog.Warn("Cache requested but no database configured")
			return nil
		}
		deps, err := s.cache.Search(origin, filter.Waypoint, count)
		s.metrics.ObserveSourceRequest("cache_departures", err)
		if err != nil {
			slog.Error("Failed to read departures from cache", "origin", origin, "error", err)
			return nil
		}
		return deps
	}

	if s.flights == nil {
		return nil
	}
	deps, err := s.flights.Departures(ctx, origin, count, filter.TrafficType)
	s.metrics.ObserveSourceRequest("departures", err)
	if err != nil {
		slog.Error("Failed to fetch departures", "origin", origin, "error", err)
		return nil
	}

	if filter.Waypoint == "" {
		return deps
	}
	filtered := deps[:0]
	for _, d := range deps {
		if strings.Contains(d.Route, filter.Waypoint) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FetchOperator returns the operator details for icao, or an empty record
func (s *Source) FetchOperator(ctx context.Context, icao string) models.Operator {
	icao = strings.TrimSpace(icao)
	if icao == "" || s.flights == nil {
		return models.Operator{}
	}
	op, err := s.flights.Operator(ctx, icao)
	s.metrics.ObserveSourceRequest("operator", err)
	if err != nil {
		slog.Warn("Failed to fetch operator", "icao", icao, "error", err)
		return models.Operator{}
	}
	return op
}

// FetchAircraft returns the aircraft type details, or an empty record
func (s *Source) FetchAircraft(ctx context.Context, aircraftType string) models.AircraftType {
	aircraftType = strings.TrimSpace(aircraftType)
	if aircraftType == "" || s.flights == nil {
		return models.AircraftType{}
	}
	at, err := s.flights.AircraftType(ctx, aircraftType)
	s.metrics.ObserveSourceRequest("aircraft_type", err)
	if err != nil {
		slog.Warn("Failed to fetch aircraft type", "type", aircraftType, "error", err)
		return models.AircraftType{}
	}
	return at
}

// FetchMETAR returns the raw METAR for icao, or ""
func (s *Source) FetchMETAR(ctx context.Context, icao string) string {
	icao = strings.TrimSpace(icao)
	if icao == "" || s.weather == nil {
		return ""
	}
	metar, err := s.weather.RawMETAR(ctx, icao)
	s.metrics.ObserveSourceRequest("metar", err)
	if err != nil {
		slog.Warn("Failed to fetch METAR", "icao", icao, "error", err)
		return ""
	}
	return metar
}

// StoreDepartures offers records to the cache. Records already cached
// under the same natural key are skipped.
func (s *Source) StoreDepartures(deps []models.Departure) {
	if s.cache == nil || len(deps) == 0 {
		return
	}
	inserted, err := s.cache.InsertBatch(deps)
	if err != nil {
		slog.Error("Failed to cache departures", "batch_size", len(deps), "error", err)
		return
	}
	s.metrics.ObserveCacheInserts(inserted)
	slog.Debug("Cached departures", "batch_size", len(deps), "inserted", inserted)
}
