// Copyright 2025 Map My Vid Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package places

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Place is the resolved detail for a location candidate, shaped by what the
// search API exposes.
type Place struct {
	Name             string
	FormattedAddress string
	Latitude         float64
	Longitude        float64
	PlaceId          string
	Rating           float64
	Types            []string
	MapsUrl          string
}

// Resolution is the tagged outcome of a search. Not finding a place is a
// normal result, not an error; Reason carries the original name for
// diagnostics when Found is false.
type Resolution struct {
	Found  bool
	Place  *Place
	Reason string
}

// Searcher abstracts the two Places API lookups the resolver alternates
// between. Implementations return (nil, nil) for an empty result set so the
// resolver can distinguish "no match" from a failed call.
type Searcher interface {
	TextSearch(ctx context.Context, query string) (*Place, error)
	FindPlace(ctx context.Context, query string) (*Place, error)
}

// Query carries the extraction-derived inputs for one lookup.
type Query struct {
	Name    string
	Address string
	City    string
	Country string
}

// Resolver turns a Query into a Resolution by trying candidate query strings
// in order against text search and then find-place. Every outbound call is
// individually bounded by a timeout and routed through a circuit breaker so
// a dead search API fails each attempt fast instead of stacking timeouts.
type Resolver struct {
	searcher Searcher
	hints    LocaleHints
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker[*Place]
}

// NewResolver builds a resolver. A non-positive timeout defaults to 8s,
// matching the per-call bound the search loop was designed around.
func NewResolver(searcher Searcher, hints LocaleHints, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	breaker := gobreaker.NewCircuitBreaker[*Place](gobreaker.Settings{
		Name: "place-search",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 10
		},
		Timeout: 30 * time.Second,
	})
	return &Resolver{
		searcher: searcher,
		hints:    hints,
		timeout:  timeout,
		breaker:  breaker,
	}
}

// Search runs the resolution loop. For each candidate query it tries text
// search, then find-place; the first non-empty result wins and ends the
// loop. Per-attempt failures are logged and swallowed; only exhausting every
// variant yields the not-found outcome. With N variants the loop makes at
// most 2N outbound calls.
func (r *Resolver) Search(ctx context.Context, q Query) *Resolution {
	queries := r.hints.BuildQueries(q.Name, q.Address, q.City, q.Country)
	for _, query := range queries {
		if place := r.attempt(ctx, query, r.searcher.TextSearch); place != nil {
			return &Resolution{Found: true, Place: place}
		}
		if place := r.attempt(ctx, query, r.searcher.FindPlace); place != nil {
			return &Resolution{Found: true, Place: place}
		}
	}
	return &Resolution{Found: false, Reason: fmt.Sprintf("no place matched %q", q.Name)}
}

func (r *Resolver) attempt(ctx context.Context, query string, call func(context.Context, string) (*Place, error)) *Place {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	place, err := r.breaker.Execute(func() (*Place, error) {
		return call(callCtx, query)
	})
	if err != nil {
		slog.WarnContext(ctx, "place search attempt failed", "query", query, "error", err)
		return nil
	}
	return place
}
