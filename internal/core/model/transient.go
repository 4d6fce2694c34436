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

// This file contains the data models that exist only in memory: the shapes
// exchanged with the generative models, the per-request analysis report, and
// the route planner's response. None of these are persisted; the durable
// state derived from them lives in persistent.go.
package model

// CandidateLocation is one place the extraction model found in a video. The
// Type field uses the model's lowercase vocabulary and is mapped to a
// LocationCategory when the row is created.
type CandidateLocation struct {
	Name    string `json:"name"`              // Place name as mentioned in the video.
	Type    string `json:"type"`              // restaurant|cafe|hotel|attraction|store|other.
	Context string `json:"context"`           // What the video said about the place.
	Address string `json:"address,omitempty"` // Address if one was spoken or shown.
}

// VideoExtraction is the structured output of the video analysis model:
// candidate locations plus optional trip-level metadata. Locations may be
// empty for footage with no identifiable places.
type VideoExtraction struct {
	Locations []*CandidateLocation `json:"locations"`
	City      string               `json:"city,omitempty"`
	Country   string               `json:"country,omitempty"`
	Summary   string               `json:"summary,omitempty"`
}

// AnalysisResult is the report returned to the client after a video has been
// processed. It is assembled at the end of the pipeline, after every
// candidate has reached a terminal search status.
type AnalysisResult struct {
	Success          bool        `json:"success"`
	VideoId          string      `json:"video_id"`
	Video            *Video      `json:"video"`
	LocationsFound   int         `json:"locations_found"`
	Locations        []*Location `json:"locations"`
	ProcessingTimeMs int64       `json:"processing_time_ms"`
}

// RoutePreferences carries the optional knobs a user can set when requesting
// an itinerary.
type RoutePreferences struct {
	StartTime      string  `json:"start_time,omitempty"`      // e.g. "09:00" or "18:30".
	DurationHours  float64 `json:"duration_hours,omitempty"`  // Desired trip length.
	Transportation string  `json:"transportation,omitempty"`  // e.g. "motorbike", "walking".
	Interests      string  `json:"interests,omitempty"`       // Free-text emphasis ("street food").
	StartLocation  string  `json:"start_location,omitempty"`  // Where the trip begins.
}

// HotelSuggestion is an optional lodging recommendation attached to a route
// item when the itinerary spans an overnight stay.
type HotelSuggestion struct {
	Name       string `json:"name"`
	Area       string `json:"area,omitempty"`
	PriceRange string `json:"price_range,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// RouteItem is one stop in a generated itinerary. Location is enriched from
// the user's saved rows by name match; it is nil when the planner invented a
// stop that matches nothing saved.
type RouteItem struct {
	Order           int                `json:"order"`
	Name            string             `json:"name"`
	Location        *Location          `json:"location,omitempty"`
	Duration        string             `json:"duration,omitempty"`       // Human readable ("1.5 hours").
	Transportation  string             `json:"transportation,omitempty"` // Leg to the next stop.
	Notes           string             `json:"notes,omitempty"`
	HotelSuggestion []*HotelSuggestion `json:"hotel_suggestions,omitempty"`
}

// RouteSummary aggregates the whole itinerary.
type RouteSummary struct {
	TotalDuration  string `json:"total_duration,omitempty"`
	TotalDistance  string `json:"total_distance,omitempty"`
	Transportation string `json:"transportation,omitempty"`
	StartTime      string `json:"start_time,omitempty"`
	OvernightTrip  bool   `json:"overnight_trip,omitempty"`
	EstimatedCost  string `json:"estimated_cost,omitempty"`
}

// RouteResponse is the planner's full answer. Produced fresh per request and
// never stored.
type RouteResponse struct {
	Route           []*RouteItem  `json:"route"`
	Summary         *RouteSummary `json:"summary"`
	Recommendations []string      `json:"recommendations"`
}

// Page is the envelope for paginated list responses.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	PageNumber int   `json:"page"`
	PageSize   int   `json:"page_size"`
}

// Statistics aggregates a user's usage for the dashboard.
type Statistics struct {
	TotalVideos         int64    `json:"total_videos"`
	TotalLocations      int64    `json:"total_locations"`
	AvgProcessingTimeMs *float64 `json:"avg_processing_time_ms,omitempty"`
}

// InsurancePrice is the tiered pricing for an insurance package.
type InsurancePrice struct {
	Daily    float64 `json:"daily"`
	Weekly   float64 `json:"weekly"`
	Monthly  float64 `json:"monthly"`
	Currency string  `json:"currency"`
}

// InsurancePackage is a static travel insurance offering surfaced per
// destination country.
type InsurancePackage struct {
	Id               string         `json:"id"`
	Name             string         `json:"name"`
	Provider         string         `json:"provider"`
	Coverage         []string       `json:"coverage"`
	Price            InsurancePrice `json:"price"`
	Rating           float64        `json:"rating"`
	Features         []string       `json:"features"`
	Description      string         `json:"description"`
	CoverageLimit    string         `json:"coverage_limit"`
	Deductible       string         `json:"deductible"`
	EmergencyContact string         `json:"emergency_contact"`
	ClaimProcess     string         `json:"claim_process"`
	Exclusions       []string       `json:"exclusions"`
	RecommendedFor   []string       `json:"recommended_for"`
}
