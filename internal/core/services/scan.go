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

package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*model.Video, error) {
	v := &model.Video{}
	err := row.Scan(
		&v.Id, &v.UserId, &v.Filename, &v.OriginalName, &v.FileSize, &v.MimeType,
		&v.DurationSeconds, &v.City, &v.Country, &v.Summary, &v.Status,
		&v.ErrorMessage, &v.ProcessingTimeMs, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func scanLocation(row rowScanner) (*model.Location, error) {
	loc := &model.Location{}
	var placeTypes []byte
	err := row.Scan(
		&loc.Id, &loc.VideoId, &loc.OriginalName, &loc.Category, &loc.Context,
		&loc.AiAddress, &loc.ResolvedName, &loc.FormattedAddress,
		&loc.Latitude, &loc.Longitude, &loc.PlaceId, &loc.Rating, &loc.MapsUrl,
		&placeTypes, &loc.SearchStatus, &loc.IsFavorite, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	loc.PlaceTypes = []string{}
	if len(placeTypes) > 0 {
		if err := json.Unmarshal(placeTypes, &loc.PlaceTypes); err != nil {
			return nil, fmt.Errorf("decoding place_types for location %s: %w", loc.Id, err)
		}
	}
	return loc, nil
}

// marshalPlaceTypes encodes the tag list for the JSONB column, normalizing
// nil to an empty array.
func marshalPlaceTypes(types []string) ([]byte, error) {
	if types == nil {
		types = []string{}
	}
	return json.Marshal(types)
}

// nullString maps "" to NULL for optional text columns.
func nullString(in string) sql.NullString {
	return sql.NullString{String: in, Valid: in != ""}
}

// normalizePage applies defaults and bounds to pagination inputs. Page 0
// means first page; a pageSize of 0 takes the default; anything negative or
// above the cap is rejected.
func normalizePage(page, pageSize, def, max int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = def
	}
	if page < 1 || pageSize < 1 || pageSize > max {
		return 0, 0, errors.New("invalid pagination parameters")
	}
	return page, pageSize, nil
}
