package source

import (
	"context"
	"strings"
	"time"

	"atcdel/internal/models"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DetailsSource supplies operator and aircraft records
type DetailsSource interface {
	FetchOperator(ctx context.Context, icao string) models.Operator
	FetchAircraft(ctx context.Context, aircraftType string) models.AircraftType
}

// Enricher fills in operator and aircraft details on request, remembering
// answers for the rest of the session so each code is fetched once
type Enricher struct {
	source    DetailsSource
	operators *expirable.LRU[string, models.Operator]
	aircraft  *expirable.LRU[string, models.AircraftType]
}

func NewEnricher(src DetailsSource, size int, ttl time.Duration) *Enricher {
	return &Enricher{
		source:    src,
		operators: expirable.NewLRU[string, models.Operator](size, nil, ttl),
		aircraft:  expirable.NewLRU[string, models.AircraftType](size, nil, ttl),
	}
}

// Enrich loads the operator and aircraft details of fp
func (e *Enricher) Enrich(ctx context.Context, fp *models.FlightPlan) {
	if icao := strings.TrimSpace(fp.OperatorICAO); icao != "" {
		op, ok := e.operators.Get(icao)
		if !ok {
			op = e.source.FetchOperator(ctx, icao)
			e.operators.Add(icao, op)
		}
		fp.OperatorDetails = op
	}

	if at := strings.TrimSpace(fp.AircraftType); at != "" {
		details, ok := e.aircraft.Get(at)
		if !ok {
			details = e.source.FetchAircraft(ctx, at)
			e.aircraft.Add(at, details)
		}
		fp.AircraftDetails = details
	}
}
