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

package commands

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mapmyvid/map-my-vid-go/internal/core/cor"
	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/places"
)

// LocationResolver fans the extracted candidates out to the place resolver
// over a bounded worker pool. Each candidate gets its own PENDING row before
// resolution starts, then moves independently to FOUND or NOT_FOUND; one
// candidate failing never disturbs its siblings, and the command itself only
// fails when a row cannot even be created.
type LocationResolver struct {
	cor.BaseCommand
	store    LocationStore
	resolver PlaceResolver
	workers  int
}

func NewLocationResolver(name string, store LocationStore, resolver PlaceResolver, workers int) *LocationResolver {
	if workers < 1 {
		workers = 1
	}
	out := &LocationResolver{store: store, resolver: resolver, workers: workers}
	out.BaseCommand = *cor.NewBaseCommand(name)
	out.InputParamName = KeyExtraction
	out.OutputParamName = KeyLocations
	return out
}

func (r *LocationResolver) Execute(context cor.Context) {
	extraction := context.Get(r.GetInputParam()).(*model.VideoExtraction)
	request := context.Get(KeyRequest).(*AnalysisRequest)

	rows := make([]*model.Location, 0, len(extraction.Locations))
	for _, candidate := range extraction.Locations {
		row := &model.Location{
			Id:           uuid.New().String(),
			VideoId:      request.VideoId,
			OriginalName: candidate.Name,
			Category:     model.CategoryFromString(candidate.Type),
			Context:      candidate.Context,
			SearchStatus: model.SearchStatusPending,
			PlaceTypes:   []string{},
		}
		if candidate.Address != "" {
			address := candidate.Address
			row.AiAddress = &address
		}
		if err := r.store.Create(context.GetContext(), row); err != nil {
			r.GetErrorCounter().Add(context.GetContext(), 1)
			slog.ErrorContext(context.GetContext(), "failed to create location row",
				"video_id", request.VideoId, "name", candidate.Name, "error", err)
			continue
		}
		rows = append(rows, row)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.workers)
	for _, row := range rows {
		wg.Add(1)
		sem <- struct{}{}
		go func(row *model.Location) {
			defer wg.Done()
			defer func() { <-sem }()
			r.resolveOne(context, row, extraction)
		}(row)
	}
	wg.Wait()

	r.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(r.GetOutputParam(), rows)
}

// resolveOne runs one candidate to its terminal state, mutating the row in
// place so the finalizer can report it without re-reading the database.
func (r *LocationResolver) resolveOne(context cor.Context, row *model.Location, extraction *model.VideoExtraction) {
	query := places.Query{
		Name: row.OriginalName,
		City: extraction.City,
	}
	if row.AiAddress != nil {
		query.Address = *row.AiAddress
	}
	if extraction.Country != "" {
		query.Country = extraction.Country
	}

	resolution := r.resolver.Search(context.GetContext(), query)
	if !resolution.Found {
		if err := r.store.MarkNotFound(context.GetContext(), row.Id); err != nil {
			slog.ErrorContext(context.GetContext(), "failed to mark location not found",
				"location_id", row.Id, "error", err)
		}
		row.SearchStatus = model.SearchStatusNotFound
		slog.InfoContext(context.GetContext(), "location not resolved",
			"location_id", row.Id, "name", row.OriginalName, "reason", resolution.Reason)
		return
	}

	place := resolution.Place
	if err := r.store.MarkFound(context.GetContext(), row.Id, place); err != nil {
		slog.ErrorContext(context.GetContext(), "failed to mark location found",
			"location_id", row.Id, "error", err)
		row.SearchStatus = model.SearchStatusError
		return
	}
	row.SearchStatus = model.SearchStatusFound
	row.ResolvedName = &place.Name
	row.FormattedAddress = &place.FormattedAddress
	row.Latitude = &place.Latitude
	row.Longitude = &place.Longitude
	row.PlaceId = &place.PlaceId
	row.MapsUrl = &place.MapsUrl
	if place.Rating > 0 {
		rating := place.Rating
		row.Rating = &rating
	}
	if len(place.Types) > 0 {
		row.PlaceTypes = place.Types
	}
}
