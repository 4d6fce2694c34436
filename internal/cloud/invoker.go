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

package cloud

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/genai"
)

// ModelInvoker bundles one model variant with its token and retry counters,
// exposing the single Generate call the rest of the application consumes.
// Callers depend on this narrow surface so tests can substitute a fake.
type ModelInvoker struct {
	model              *QuotaAwareGenerativeAIModel
	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
	retryCounter       metric.Int64Counter
}

// NewModelInvoker creates an invoker whose counters are namespaced by the
// role name ("extractor", "planner", ...).
func NewModelInvoker(role string, model *QuotaAwareGenerativeAIModel) *ModelInvoker {
	meter := otel.Meter("github.com/mapmyvid/map-my-vid-go")
	inputCounter, err := meter.Int64Counter(fmt.Sprintf("%s.tokens.input", role))
	if err != nil {
		slog.Warn("failed to create input token counter", "role", role, "error", err)
	}
	outputCounter, err := meter.Int64Counter(fmt.Sprintf("%s.tokens.output", role))
	if err != nil {
		slog.Warn("failed to create output token counter", "role", role, "error", err)
	}
	retryCounter, err := meter.Int64Counter(fmt.Sprintf("%s.retries", role))
	if err != nil {
		slog.Warn("failed to create retry counter", "role", role, "error", err)
	}
	return &ModelInvoker{
		model:              model,
		inputTokenCounter:  inputCounter,
		outputTokenCounter: outputCounter,
		retryCounter:       retryCounter,
	}
}

// Generate sends the content to the model and returns the de-fenced response
// text.
func (m *ModelInvoker) Generate(ctx context.Context, content []*genai.Content) (string, error) {
	return GenerateMultiModalResponse(ctx, m.inputTokenCounter, m.outputTokenCounter, m.retryCounter, 0, m.model, content)
}
