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
	"errors"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type retryCountKey struct{}

// QuotaAwareGenerativeAIModel decorates a Gemini model handle with rate
// limiting and retry behavior. Vertex AI enforces per-model request quotas;
// exceeding them fails the call, so requests are throttled client-side and
// transient failures are retried before the error reaches the workflow.
type QuotaAwareGenerativeAIModel struct {
	GenerativeContentConfig *genai.GenerateContentConfig // Generation settings applied to every call.
	ModelName               string
	ModelHandle             *genai.Models
	RateLimit               rate.Limiter
}

// NewQuotaAwareModel wraps a model handle and its generation config with a
// limiter allowing requestsPerSecond calls.
func NewQuotaAwareModel(wrapped *genai.GenerateContentConfig, name string, handle *genai.Models, requestsPerSecond int) *QuotaAwareGenerativeAIModel {
	return &QuotaAwareGenerativeAIModel{
		GenerativeContentConfig: wrapped,
		ModelName:               name,
		ModelHandle:             handle,
		RateLimit:               *rate.NewLimiter(rate.Every(time.Second/1), requestsPerSecond),
	}
}

// GenerateContent calls the underlying model, waiting out the rate limiter
// and retrying failed calls up to three times. The retry count travels in
// the context so recursive attempts share one budget.
func (q *QuotaAwareGenerativeAIModel) GenerateContent(ctx context.Context, content []*genai.Content) (resp *genai.GenerateContentResponse, err error) {
	if !q.RateLimit.Allow() {
		time.Sleep(time.Second * 5)
		return q.GenerateContent(ctx, content)
	}

	resp, err = q.ModelHandle.GenerateContent(ctx, q.ModelName, content, q.GenerativeContentConfig)
	if err != nil {
		retryCount, ok := ctx.Value(retryCountKey{}).(int)
		if !ok {
			retryCount = 0
		}
		if retryCount >= 3 {
			return nil, errors.New("failed generation on max retries")
		}
		errCtx := context.WithValue(ctx, retryCountKey{}, retryCount+1)
		// Back off before retrying so quota windows can recover.
		time.Sleep(time.Second * 10)
		return q.GenerateContent(errCtx, content)
	}
	return resp, nil
}
