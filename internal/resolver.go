package internal

import (
	"context"
	"math/rand"
	"strings"
	"time"
)

// Location is an optional geographic hint attached to a query
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Response is the normalized result of answering one query, regardless of
// which source produced it.
type Response struct {
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	Entities   []Entity `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// ResponseSource answers a single query. The resolver composes two of
// these: the remote backend and the local substitute.
type ResponseSource interface {
	Answer(ctx context.Context, query, sessionID string, loc *Location) (*Response, error)
}

// Resolver tries the primary source and falls back to the substitute
// after a simulated latency. It never propagates the primary's error:
// callers always get a Response.
type Resolver struct {
	primary    ResponseSource
	substitute ResponseSource

	// delay sleeps before the substitute answers, honoring ctx. Replaced
	// in tests to avoid real waits.
	delay func(ctx context.Context) error
}

// NewResolver creates a resolver over a primary source and a substitute
func NewResolver(primary, substitute ResponseSource) *Resolver {
	return &Resolver{
		primary:    primary,
		substitute: substitute,
		delay:      fallbackDelay,
	}
}

// Resolve answers a query. Any primary failure (transport error, bad
// status, malformed body) is logged and recovered via the substitute; the
// only error a caller can see is context cancellation or a substitute
// failure, both handled upstream by the dispatcher.
func (r *Resolver) Resolve(ctx context.Context, query, sessionID string, loc *Location) (*Response, error) {
	resp, err := r.primary.Answer(ctx, query, sessionID, loc)
	if err == nil {
		return resp, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	LogWarn("Primary backend unavailable, using local substitute: %v", err)

	if err := r.delay(ctx); err != nil {
		return nil, err
	}

	return r.substitute.Answer(ctx, query, sessionID, loc)
}

// fallbackDelay emulates real answer latency for the substitute path,
// sleeping a uniform random 1.0-3.0s.
func fallbackDelay(ctx context.Context) error {
	d := time.Duration(1000+rand.Intn(2000)) * time.Millisecond
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// cannedEntry is one keyword-matched substitute answer
type cannedEntry struct {
	keyword    string
	answer     string
	sources    []Source
	entities   []Entity
	confidence float64
}

// Substitute is the deterministic local stand-in used when the remote
// backend is unreachable. Matching is first-keyword-wins over the
// lowercased query.
type Substitute struct {
	table []cannedEntry
}

// NewSubstitute creates a substitute with the built-in canned table
func NewSubstitute() *Substitute {
	return &Substitute{table: cannedTable}
}

// Answer implements ResponseSource
func (s *Substitute) Answer(_ context.Context, query, _ string, _ *Location) (*Response, error) {
	lowered := strings.ToLower(query)
	for _, entry := range s.table {
		if strings.Contains(lowered, entry.keyword) {
			return &Response{
				Answer:     entry.answer,
				Sources:    entry.sources,
				Entities:   entry.entities,
				Confidence: entry.confidence,
			}, nil
		}
	}

	return &Response{
		Answer: "I can help you with MOSDAC satellite data, weather information, " +
			"and oceanographic products. MOSDAC (Meteorological and Oceanographic " +
			"Satellite Data Archival Centre) provides data from Indian satellites " +
			"like INSAT-3D, Oceansat, and SCATSAT. Could you tell me more about " +
			"what you are looking for?",
		Sources: []Source{
			{
				URL:       "https://www.mosdac.gov.in",
				Title:     "MOSDAC Portal",
				Content:   "Meteorological and Oceanographic Satellite Data Archival Centre",
				Relevance: 0.6,
			},
		},
		Entities:   nil,
		Confidence: 0.75,
	}, nil
}

var cannedTable = []cannedEntry{
	{
		keyword: "insat",
		answer: "INSAT-3D is an advanced meteorological satellite of ISRO that " +
			"provides atmospheric soundings, imaging in visible and infrared bands, " +
			"and data relay services. Its imager and sounder products, including " +
			"temperature and humidity profiles, are distributed through MOSDAC.",
		sources: []Source{
			{
				URL:       "https://www.mosdac.gov.in/insat-3d",
				Title:     "INSAT-3D Mission",
				Content:   "INSAT-3D meteorological satellite mission details and data products",
				Relevance: 0.95,
			},
		},
		entities: []Entity{
			{Text: "INSAT-3D", Label: "SATELLITE", Confidence: 0.98},
			{Text: "ISRO", Label: "ORGANIZATION", Confidence: 0.95},
		},
		confidence: 0.92,
	},
	{
		keyword: "oceansat",
		answer: "Oceansat-2 carries the Ocean Colour Monitor and a Ku-band " +
			"scatterometer for ocean surface wind retrieval. Chlorophyll, total " +
			"suspended matter and wind vector products are available on MOSDAC.",
		sources: []Source{
			{
				URL:       "https://www.mosdac.gov.in/oceansat-2",
				Title:     "Oceansat-2 Mission",
				Content:   "Oceansat-2 ocean observation satellite data products",
				Relevance: 0.93,
			},
		},
		entities: []Entity{
			{Text: "Oceansat-2", Label: "SATELLITE", Confidence: 0.97},
		},
		confidence: 0.9,
	},
	{
		keyword: "scatsat",
		answer: "SCATSAT-1 is a scatterometer mission providing ocean surface " +
			"wind vector products used in cyclone tracking and weather forecasting. " +
			"Level 2 and Level 3 wind products are archived on MOSDAC.",
		sources: []Source{
			{
				URL:       "https://www.mosdac.gov.in/scatsat-1",
				Title:     "SCATSAT-1 Mission",
				Content:   "SCATSAT-1 scatterometer wind products",
				Relevance: 0.91,
			},
		},
		entities: []Entity{
			{Text: "SCATSAT-1", Label: "SATELLITE", Confidence: 0.96},
		},
		confidence: 0.89,
	},
	{
		keyword: "cyclone",
		answer: "MOSDAC provides near-real-time cyclone monitoring products " +
			"derived from INSAT-3D imagery and SCATSAT-1 winds, including track " +
			"predictions, intensity estimates and heavy rainfall warnings for the " +
			"Indian Ocean region.",
		sources: []Source{
			{
				URL:       "https://www.mosdac.gov.in/cyclone",
				Title:     "Cyclone Monitoring",
				Content:   "Cyclone track and intensity products from Indian satellites",
				Relevance: 0.9,
			},
		},
		entities: []Entity{
			{Text: "Indian Ocean", Label: "LOCATION", Confidence: 0.9},
		},
		confidence: 0.88,
	},
	{
		keyword: "rainfall",
		answer: "Satellite-derived rainfall products on MOSDAC include the " +
			"INSAT Multi-Spectral Rainfall Algorithm (IMSRA) estimates and GPM " +
			"merged products, available at hourly and daily aggregations.",
		sources: []Source{
			{
				URL:       "https://www.mosdac.gov.in/rainfall",
				Title:     "Rainfall Products",
				Content:   "IMSRA and merged satellite rainfall estimates",
				Relevance: 0.89,
			},
		},
		entities: []Entity{
			{Text: "IMSRA", Label: "PRODUCT", Confidence: 0.92},
		},
		confidence: 0.87,
	},
}
