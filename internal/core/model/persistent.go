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

// Package model defines the core data structures for the application.
// This file holds the entities persisted to PostgreSQL: the uploaded Video
// and the Location rows extracted from it. Optional columns are pointer
// fields so absent values survive the database round trip as NULL.
package model

import "time"

// VideoStatus is the lifecycle state of an uploaded video.
type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "PENDING"
	VideoStatusProcessing VideoStatus = "PROCESSING"
	VideoStatusCompleted  VideoStatus = "COMPLETED"
	VideoStatusFailed     VideoStatus = "FAILED"
)

// SearchStatus is the resolution state of a single extracted location.
type SearchStatus string

const (
	SearchStatusPending  SearchStatus = "PENDING"
	SearchStatusFound    SearchStatus = "FOUND"
	SearchStatusNotFound SearchStatus = "NOT_FOUND"
	SearchStatusError    SearchStatus = "ERROR"
)

// LocationCategory classifies an extracted location.
type LocationCategory string

const (
	CategoryRestaurant LocationCategory = "RESTAURANT"
	CategoryCafe       LocationCategory = "CAFE"
	CategoryHotel      LocationCategory = "HOTEL"
	CategoryAttraction LocationCategory = "ATTRACTION"
	CategoryStore      LocationCategory = "STORE"
	CategoryOther      LocationCategory = "OTHER"
)

// Video represents one uploaded travel video and the trip-level metadata the
// analysis extracted from it. A video moves PROCESSING -> COMPLETED or
// PROCESSING -> FAILED exactly once; ErrorMessage and ProcessingTimeMs are
// populated when the terminal state is written.
type Video struct {
	Id               string      `json:"id"`
	UserId           string      `json:"user_id"`
	Filename         string      `json:"filename"`      // Stored filename, unique per upload.
	OriginalName     string      `json:"original_name"` // Client-supplied filename.
	FileSize         int64       `json:"file_size"`
	MimeType         string      `json:"mime_type"`
	DurationSeconds  *float64    `json:"duration_seconds,omitempty"`
	City             *string     `json:"city,omitempty"`
	Country          *string     `json:"country,omitempty"`
	Summary          *string     `json:"summary,omitempty"`
	Status           VideoStatus `json:"status"`
	ErrorMessage     *string     `json:"error_message,omitempty"`
	ProcessingTimeMs *int64      `json:"processing_time_ms,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	// Locations is populated by list queries that join the child rows;
	// it is not a column.
	Locations []*Location `json:"locations,omitempty"`
}

// Location represents one place mentioned in a video. The original_* fields
// come from the AI extraction and are immutable; the resolved fields are
// written by the place resolver when SearchStatus becomes FOUND.
type Location struct {
	Id               string           `json:"id"`
	VideoId          string           `json:"video_id"`
	OriginalName     string           `json:"original_name"` // Name as mentioned in the video.
	Category         LocationCategory `json:"category"`
	Context          string           `json:"context"` // What the video said about the place.
	AiAddress        *string          `json:"ai_address,omitempty"`
	ResolvedName     *string          `json:"resolved_name,omitempty"`
	FormattedAddress *string          `json:"formatted_address,omitempty"`
	Latitude         *float64         `json:"latitude,omitempty"`
	Longitude        *float64         `json:"longitude,omitempty"`
	PlaceId          *string          `json:"place_id,omitempty"`
	Rating           *float64         `json:"rating,omitempty"`
	MapsUrl          *string          `json:"maps_url,omitempty"`
	PlaceTypes       []string         `json:"place_types"` // Place type tags from the search result.
	SearchStatus     SearchStatus     `json:"search_status"`
	IsFavorite       bool             `json:"is_favorite"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// CategoryFromString maps the lowercase type emitted by the extraction model
// to a LocationCategory. Unknown values fall back to OTHER so a creative
// model answer never fails the pipeline.
func CategoryFromString(in string) LocationCategory {
	switch in {
	case "restaurant":
		return CategoryRestaurant
	case "cafe":
		return CategoryCafe
	case "hotel":
		return CategoryHotel
	case "attraction":
		return CategoryAttraction
	case "store":
		return CategoryStore
	default:
		return CategoryOther
	}
}
