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

// Package commands provides the concrete steps of the video analysis
// pipeline, each built on the cor Command interface: upload the raw bytes,
// extract candidate locations with the model, parse the extraction, persist
// trip metadata, fan the candidates out to the place resolver, and assemble
// the final report. Commands exchange state through named context keys
// rather than the chain's default piping, so each step declares exactly what
// it reads.
package commands

import (
	"context"

	"google.golang.org/genai"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/places"
)

// Context keys for the analysis pipeline.
const (
	KeyRequest       = "__ANALYSIS_REQUEST__" // *AnalysisRequest
	KeyRawExtraction = "__RAW_EXTRACTION__"   // string, model response text
	KeyExtraction    = "__EXTRACTION__"       // *model.VideoExtraction
	KeyLocations     = "__LOCATIONS__"        // []*model.Location, terminal states
	KeyResult        = "__RESULT__"           // *model.AnalysisResult
)

// AnalysisRequest carries one validated upload through the pipeline.
type AnalysisRequest struct {
	VideoId      string
	UserId       string
	Data         []byte
	Filename     string // Stored filename, unique per upload.
	OriginalName string
	MimeType     string
	Size         int64
}

// Generator is the model surface the extraction command consumes.
type Generator interface {
	Generate(ctx context.Context, content []*genai.Content) (string, error)
}

// Uploader archives raw video bytes.
type Uploader interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
}

// MetadataStore persists trip-level metadata onto the video row.
type MetadataStore interface {
	UpdateTripMetadata(ctx context.Context, id, city, country, summary string) error
}

// LocationStore persists location rows through their PENDING to terminal
// state transitions.
type LocationStore interface {
	Create(ctx context.Context, loc *model.Location) error
	MarkFound(ctx context.Context, id string, p *places.Place) error
	MarkNotFound(ctx context.Context, id string) error
}

// PlaceResolver resolves one extracted candidate to a real place.
type PlaceResolver interface {
	Search(ctx context.Context, q places.Query) *places.Resolution
}
