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
	"fmt"
	"log"
	"os"
	"strings"

	"go.opentelemetry.io/otel/metric"

	"github.com/BurntSushi/toml"
	"google.golang.org/genai"
)

// Configuration loading constants. The loader reads a base file and then an
// environment-specific override, both resolved relative to the directory
// named by the MMV_CONFIG_PREFIX environment variable.
const (
	ConfigFileBaseName  = ".env"              // Base name for configuration files (".env.toml").
	ConfigFileExtension = ".toml"             // File extension for configuration files.
	ConfigSeparator     = "."                 // Separator in override file names (".env.test.toml").
	EnvConfigFilePrefix = "MMV_CONFIG_PREFIX" // Environment variable naming the config directory.
	EnvConfigRuntime    = "MMV_RUNTIME"       // Environment variable naming the runtime ("local", "test", "prod").
	MaxRetries          = 3                   // Maximum retries for a failed model call.
)

// fileExists checks if a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig provides hierarchical configuration loading. It first decodes
// the base configuration file and then overlays an environment-specific file
// whose values overwrite the base. The directory and runtime name come from
// environment variables; the runtime defaults to "test".
//
// Top-level struct fields merge key by key, but map sections such as
// [agent_models.*] are replaced whole: an override file touching a model
// must restate that model's full section.
func LoadConfig(baseConfig interface{}) {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		_, err := toml.DecodeFile(baseConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	// Values in the environment file overwrite the base config.
	if fileExists(envConfigFileName) {
		_, err := toml.DecodeFile(envConfigFileName, baseConfig)
		if err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}

// Validate fails fast on configuration the server cannot run without.
// Called once at startup so a missing credential surfaces immediately
// instead of on the first request that needs it.
func (c *Config) Validate() error {
	if c.Application.GoogleProjectId == "" {
		return errors.New("config: application.google_project_id is required")
	}
	if c.Storage.VideoBucket == "" {
		return errors.New("config: storage.video_bucket is required")
	}
	if c.Database.DSN == "" {
		return errors.New("config: database.dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	if c.PlaceSearch.APIKey == "" {
		return errors.New("config: place_search.api_key is required")
	}
	if _, ok := c.AgentModels["extractor"]; !ok {
		return errors.New("config: agent_models.extractor is required")
	}
	if c.Application.ThreadPoolSize <= 0 {
		c.Application.ThreadPoolSize = 4
	}
	return nil
}

// GenerateMultiModalResponse executes a multi-modal request against a
// generative model with retries and token telemetry. The response text is
// concatenated across candidate parts and stripped of markdown JSON fencing
// so callers can unmarshal it directly.
func GenerateMultiModalResponse(
	ctx context.Context,
	inputTokenCounter metric.Int64Counter,
	outputTokenCounter metric.Int64Counter,
	retryCounter metric.Int64Counter,
	tryCount int,
	model *QuotaAwareGenerativeAIModel,
	content []*genai.Content) (value string, err error) {
	resp, err := model.GenerateContent(ctx, content)

	if err != nil {
		if tryCount < MaxRetries {
			retryCounter.Add(ctx, 1)
			return GenerateMultiModalResponse(ctx, inputTokenCounter, outputTokenCounter, retryCounter, tryCount+1, model, content)
		}
		return "", err
	}

	inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
	outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))

	value = ""
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				value += fmt.Sprint(part.Text)
			}
		}
	}
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "```json")
	value = strings.TrimSuffix(value, "```")
	return value, nil
}

// NewTextPart wraps a prompt string as a content part.
func NewTextPart(in string) *genai.Part {
	return &genai.Part{Text: in}
}

// NewInlineData builds an inline media part from raw bytes, used to hand
// uploaded video or audio directly to the model without a bucket round trip.
func NewInlineData(data []byte, mimeType string) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}}
}
