// Package synth produces batches of training flight plans: IFR plans from
// recorded departures and VFR plans generated at random.
package synth

import (
	"context"
	"log/slog"
	"strings"

	"atcdel/internal/metrics"
	"atcdel/internal/models"
	"atcdel/internal/rand"
)

// RecordSource supplies raw departure records and origin weather
type RecordSource interface {
	FetchDepartures(ctx context.Context, origin string, count int, filter models.DepartureFilter) []models.Departure
	FetchMETAR(ctx context.Context, icao string) string
}

// RecordCache receives every IFR record turned into a plan
type RecordCache interface {
	StoreDepartures(deps []models.Departure)
}

// GATypes are the aircraft types drawn for generated VFR plans
var GATypes = []string{"C152", "C172", "C182", "P28A", "PA32", "SR22", "BE36", "DA40"}

// CompassSectors are the VFR departure sectors shared by every airport
var CompassSectors = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// DefaultReportingPoint is the local reporting point sector used when none
// is configured
const DefaultReportingPoint = "LOCAL"

const callsignAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Request describes one batch
type Request struct {
	Origin  string
	Number  int
	VFR     int // how many of Number are VFR plans
	Details bool
	Filter  models.DepartureFilter
}

// Synthesizer builds flight plans
type Synthesizer struct {
	source         RecordSource
	cache          RecordCache
	rng            *rand.Rand
	metrics        *metrics.Collector
	reportingPoint string
}

type Option func(*Synthesizer)

// WithCache offers produced IFR records to cache
func WithCache(cache RecordCache) Option {
	return func(s *Synthesizer) { s.cache = cache }
}

func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = r }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(s *Synthesizer) { s.metrics = m }
}

// WithReportingPoint sets the local reporting point drawn as a VFR sector
func WithReportingPoint(name string) Option {
	return func(s *Synthesizer) {
		if name = strings.TrimSpace(name); name != "" {
			s.reportingPoint = name
		}
	}
}

func New(src RecordSource, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		source:         src,
		rng:            rand.New(),
		reportingPoint: DefaultReportingPoint,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FlightPlans returns req.VFR generated VFR plans and up to
// req.Number-req.VFR IFR plans, shuffled together
func (s *Synthesizer) FlightPlans(ctx context.Context, req Request) []*models.FlightPlan {
	n := max(req.Number, 0)
	k := min(max(req.VFR, 0), n)

	plans := s.VFRFlightPlans(ctx, req.Origin, k, req.Details)
	plans = append(plans, s.IFRFlightPlans(ctx, req.Origin, n-k, req.Details, req.Filter)...)
	rand.ShuffleSlice(s.rng, plans)

	slog.Debug("Synthesized flight plans", "origin", req.Origin, "requested", n, "vfr", k, "total", len(plans))
	return plans
}

// IFRFlightPlans converts up to n departure records into flight plans.
// Fewer plans are returned when the source has fewer usable records.
func (s *Synthesizer) IFRFlightPlans(ctx context.Context, origin string, n int, details bool, filter models.DepartureFilter) []*models.FlightPlan {
	if n <= 0 {
		return nil
	}

	var metar string
	if details {
		metar = s.source.FetchMETAR(ctx, origin)
	}

	departures := s.source.FetchDepartures(ctx, origin, n, filter)
	plans := make([]*models.FlightPlan, 0, min(n, len(departures)))
	stored := make([]models.Departure, 0, cap(plans))
	for _, d := range departures {
		if len(plans) >= n {
			break
		}
		d = d.Normalized()
		if d.Route == "" {
			slog.Debug("Skipping departure without route", "ident", d.Ident)
			continue
		}

		fp := &models.FlightPlan{
			Ident:           d.Ident,
			AircraftType:    d.AircraftType,
			OriginICAO:      d.OriginICAO(),
			DestinationICAO: d.DestinationICAO(),
			OperatorICAO:    d.OperatorICAO,
			Route:           d.Route,
			Squawk:          s.Squawk(),
			OriginMETAR:     metar,
		}
		if d.Origin != nil {
			fp.OriginDetails = *d.Origin
		}
		if d.Destination != nil {
			fp.DestinationDetails = *d.Destination
		}

		plans = append(plans, fp)
		stored = append(stored, d)
		s.metrics.ObserveFlightPlan(fp.FlightRules())
	}

	if s.cache != nil {
		s.cache.StoreDepartures(stored)
	}
	if len(plans) < n {
		slog.Info("Fewer departures available than requested", "origin", origin, "requested", n, "available", len(plans))
	}
	return plans
}

// VFRFlightPlans generates n VFR plans departing origin
func (s *Synthesizer) VFRFlightPlans(ctx context.Context, origin string, n int, details bool) []*models.FlightPlan {
	if n <= 0 {
		return nil
	}

	origin = strings.TrimSpace(origin)
	var metar string
	if details {
		metar = s.source.FetchMETAR(ctx, origin)
	}

	sectors := append(append([]string(nil), CompassSectors...), s.reportingPoint)
	plans := make([]*models.FlightPlan, 0, n)
	for i := 0; i < n; i++ {
		fp := &models.FlightPlan{
			Ident:         s.callsign(),
			AircraftType:  rand.SampleSlice(s.rng, GATypes),
			OriginICAO:    origin,
			Route:         models.VFRMarker + " " + rand.SampleSlice(s.rng, sectors),
			Squawk:        s.Squawk(),
			OriginDetails: models.Airport{CodeICAO: origin},
			OriginMETAR:   metar,
		}
		plans = append(plans, fp)
		s.metrics.ObserveFlightPlan(fp.FlightRules())
	}
	return plans
}

// callsign returns N + 3 digits + 2 uppercase alphanumerics
func (s *Synthesizer) callsign() string {
	var b strings.Builder
	b.WriteByte('N')
	for i := 0; i < 3; i++ {
		b.WriteByte(byte('0' + s.rng.Intn(10)))
	}
	for i := 0; i < 2; i++ {
		b.WriteByte(callsignAlphabet[s.rng.Intn(len(callsignAlphabet))])
	}
	return b.String()
}

// Squawk draws a code uniformly from the valid transponder codes in
// [MinSquawk, MaxSquawk]
func (s *Synthesizer) Squawk() models.Squawk {
	for {
		// four octal digits written out as decimal digits
		v := s.rng.Intn(8 * 8 * 8 * 8)
		code := models.Squawk((v>>9&7)*1000 + (v>>6&7)*100 + (v>>3&7)*10 + v&7)
		if code >= models.MinSquawk && code <= models.MaxSquawk {
			return code
		}
	}
}
