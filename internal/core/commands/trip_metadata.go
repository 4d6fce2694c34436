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

	"github.com/mapmyvid/map-my-vid-go/internal/core/cor"
	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// TripMetadata writes the extraction's city, country, and summary onto the
// video row. A write failure is logged but does not stop the pipeline; the
// locations are worth more than the trip header.
type TripMetadata struct {
	cor.BaseCommand
	store MetadataStore
}

func NewTripMetadata(name string, store MetadataStore) *TripMetadata {
	out := &TripMetadata{store: store}
	out.BaseCommand = *cor.NewBaseCommand(name)
	out.InputParamName = KeyExtraction
	return out
}

func (t *TripMetadata) Execute(context cor.Context) {
	extraction := context.Get(t.GetInputParam()).(*model.VideoExtraction)
	request := context.Get(KeyRequest).(*AnalysisRequest)

	if extraction.City == "" && extraction.Country == "" && extraction.Summary == "" {
		t.GetSuccessCounter().Add(context.GetContext(), 1)
		return
	}

	err := t.store.UpdateTripMetadata(context.GetContext(), request.VideoId,
		extraction.City, extraction.Country, extraction.Summary)
	if err != nil {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		slog.WarnContext(context.GetContext(), "failed to persist trip metadata",
			"video_id", request.VideoId, "error", err)
		return
	}
	t.GetSuccessCounter().Add(context.GetContext(), 1)
}
