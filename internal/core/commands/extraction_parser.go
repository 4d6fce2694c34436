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
	"encoding/json"
	"errors"

	"github.com/mapmyvid/map-my-vid-go/internal/core/cor"
	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// ExtractionParser converts the model's response text into a typed
// VideoExtraction. The extraction model is pinned to a JSON response type, so
// a decode failure here is a hard pipeline error, not something to paper
// over.
type ExtractionParser struct {
	cor.BaseCommand
}

func NewExtractionParser(name string) *ExtractionParser {
	out := &ExtractionParser{}
	out.BaseCommand = *cor.NewBaseCommand(name)
	out.InputParamName = KeyRawExtraction
	out.OutputParamName = KeyExtraction
	return out
}

func (p *ExtractionParser) Execute(context cor.Context) {
	text := context.Get(p.GetInputParam()).(string)

	extraction := &model.VideoExtraction{}
	if err := json.Unmarshal([]byte(text), extraction); err != nil {
		p.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(p.GetName(), model.WrapError(model.ErrResponseParse, "commands.parse", err))
		return
	}
	if extraction.Locations == nil {
		extraction.Locations = []*model.CandidateLocation{}
	}
	for _, candidate := range extraction.Locations {
		if candidate == nil || candidate.Name == "" {
			p.GetErrorCounter().Add(context.GetContext(), 1)
			context.AddError(p.GetName(), model.WrapError(model.ErrResponseParse, "commands.parse", errors.New("location candidate without a name")))
			return
		}
	}

	p.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(p.GetOutputParam(), extraction)
}
