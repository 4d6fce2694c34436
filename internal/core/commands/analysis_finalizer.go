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
	"github.com/mapmyvid/map-my-vid-go/internal/core/cor"
	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// AnalysisFinalizer assembles the per-request report from the resolved rows.
// The workflow fills in the video record and elapsed time after it writes the
// terminal status.
type AnalysisFinalizer struct {
	cor.BaseCommand
}

func NewAnalysisFinalizer(name string) *AnalysisFinalizer {
	out := &AnalysisFinalizer{}
	out.BaseCommand = *cor.NewBaseCommand(name)
	out.InputParamName = KeyLocations
	out.OutputParamName = KeyResult
	return out
}

func (f *AnalysisFinalizer) IsExecutable(context cor.Context) bool {
	return context.Get(f.GetInputParam()) != nil && context.Get(KeyRequest) != nil
}

func (f *AnalysisFinalizer) Execute(context cor.Context) {
	locations := context.Get(f.GetInputParam()).([]*model.Location)
	request := context.Get(KeyRequest).(*AnalysisRequest)

	result := &model.AnalysisResult{
		Success:        true,
		VideoId:        request.VideoId,
		LocationsFound: len(locations),
		Locations:      locations,
	}

	f.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(f.GetOutputParam(), result)
}
