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

	"googlemaps.github.io/maps"
)

// GoogleSearcher implements Searcher over the official Google Maps client.
type GoogleSearcher struct {
	client   *maps.Client
	language string
	region   string
}

// NewGoogleSearcher wraps a maps client with the language and region bias
// applied to every request.
func NewGoogleSearcher(client *maps.Client, language, region string) *GoogleSearcher {
	return &GoogleSearcher{client: client, language: language, region: region}
}

// TextSearch runs a Places text search and returns the first result, or
// (nil, nil) when the query matched nothing.
func (g *GoogleSearcher) TextSearch(ctx context.Context, query string) (*Place, error) {
	resp, err := g.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: g.language,
		Region:   g.region,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return fromSearchResult(&resp.Results[0]), nil
}

// FindPlace runs a find-place-from-text lookup and returns the first
// candidate, or (nil, nil) when there are none.
func (g *GoogleSearcher) FindPlace(ctx context.Context, query string) (*Place, error) {
	resp, err := g.client.FindPlaceFromText(ctx, &maps.FindPlaceFromTextRequest{
		Input:     query,
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Language:  g.language,
		Fields: []maps.PlaceSearchFieldMask{
			maps.PlaceSearchFieldMaskPlaceID,
			maps.PlaceSearchFieldMaskName,
			maps.PlaceSearchFieldMaskFormattedAddress,
			maps.PlaceSearchFieldMaskGeometry,
			maps.PlaceSearchFieldMaskTypes,
			maps.PlaceSearchFieldMaskRating,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, nil
	}
	return fromSearchResult(&resp.Candidates[0]), nil
}

func fromSearchResult(r *maps.PlacesSearchResult) *Place {
	return &Place{
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Latitude:         r.Geometry.Location.Lat,
		Longitude:        r.Geometry.Location.Lng,
		PlaceId:          r.PlaceID,
		Rating:           float64(r.Rating),
		Types:            r.Types,
		MapsUrl:          MapsURL(r.PlaceID),
	}
}

// MapsURL builds the canonical Google Maps link for a place id.
func MapsURL(placeID string) string {
	return fmt.Sprintf("https://www.google.com/maps/place/?q=place_id:%s", placeID)
}
