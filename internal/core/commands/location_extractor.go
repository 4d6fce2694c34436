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
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mapmyvid/map-my-vid-go/internal/cloud"
	"github.com/mapmyvid/map-my-vid-go/internal/core/cor"
	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// LocationExtractor sends the video inline to the extraction model and
// captures the raw response text. The prompt carries a one-shot example so
// the model answers in the exact JSON shape the parser expects.
type LocationExtractor struct {
	cor.BaseCommand
	generator Generator
}

func NewLocationExtractor(name string, generator Generator) *LocationExtractor {
	out := &LocationExtractor{generator: generator}
	out.BaseCommand = *cor.NewBaseCommand(name)
	out.InputParamName = KeyRequest
	out.OutputParamName = KeyRawExtraction
	return out
}

func (l *LocationExtractor) Execute(context cor.Context) {
	request := context.Get(l.GetInputParam()).(*AnalysisRequest)

	content := []*genai.Content{{
		Parts: []*genai.Part{
			cloud.NewTextPart(extractionPrompt()),
			cloud.NewInlineData(request.Data, request.MimeType),
		},
	}}

	text, err := l.generator.Generate(context.GetContext(), content)
	if err != nil {
		l.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(l.GetName(), model.WrapError(model.ErrExternalService, "commands.extract", err))
		return
	}

	l.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(l.GetOutputParam(), text)
}

// extractionPrompt renders the instructions plus a worked example from a real
// travel clip.
func extractionPrompt() string {
	example, _ := json.MarshalIndent(model.GetExampleExtraction(), "", "  ")

	var b strings.Builder
	b.WriteString("Analyze this travel video and extract every real-world place it features.\n\n")
	b.WriteString("Capture places shown on screen, named in speech, or visible on signs, menus, and storefronts. ")
	b.WriteString("For each place report:\n")
	b.WriteString("- name: the place name exactly as seen or spoken, keeping the original language and diacritics\n")
	b.WriteString("- type: one of restaurant, cafe, hotel, attraction, store, other\n")
	b.WriteString("- context: one sentence on how the place appears in the video\n")
	b.WriteString("- address: the street address, only when it is actually visible or spoken\n\n")
	b.WriteString("Also report the trip-level fields:\n")
	b.WriteString("- city: the city the video was filmed in, when determinable\n")
	b.WriteString("- country: the country, when determinable\n")
	b.WriteString("- summary: two or three sentences describing the trip\n\n")
	b.WriteString("Do not invent places. If nothing identifiable appears, return an empty locations array.\n\n")
	fmt.Fprintf(&b, "Respond with a single JSON object shaped like this example:\n%s\n", example)
	return b.String()
}
