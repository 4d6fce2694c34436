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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files, along with the shared clients for the external
// services the backend depends on: Google Cloud Storage, the Gemini API,
// the Google Places API, and PostgreSQL.
//
// All configurable parameters live in the Config struct so the composition
// root can build every dependency explicitly from one place.
package cloud

import "google.golang.org/genai"

// DefaultSafetySettings defines the content safety thresholds applied to all
// GenAI model calls. Travel footage is benign but routinely mentions alcohol
// and nightlife; the non-restrictive settings keep the model from refusing
// such content.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// Storage represents the configuration for the video upload bucket.
type Storage struct {
	VideoBucket string `toml:"video_bucket"` // Bucket receiving raw uploads under videos/{userId}/{filename}.
}

// Database represents the PostgreSQL connection settings.
type Database struct {
	DSN string `toml:"dsn"` // Connection string handed to the pgx stdlib driver.
}

// Auth holds settings for the bearer token middleware. Token issuance lives
// in a separate identity service; this backend only verifies.
type Auth struct {
	JWTSecret string `toml:"jwt_secret"` // HMAC secret shared with the token issuer.
}

// PlaceSearch holds the Google Places API settings used by the resolver.
type PlaceSearch struct {
	APIKey           string `toml:"api_key"`            // Places API key. Startup fails without one.
	Language         string `toml:"language"`           // Result language (e.g. "vi").
	Region           string `toml:"region"`             // Region bias (e.g. "vn").
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // Per-call deadline for each search request.
}

// GeminiModel represents the configuration for one generative model variant.
type GeminiModel struct {
	Model              string  `toml:"model"`               // The model name (e.g. "gemini-2.5-flash-lite").
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the model.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter.
	TopP               float32 `toml:"top_p"`               // The top_p parameter.
	TopK               float32 `toml:"top_k"`               // The top_k parameter.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of output tokens.
	OutputFormat       string  `toml:"output_format"`       // Response MIME type ("application/json" or "text/plain").
	RateLimit          int     `toml:"rate_limit"`          // Requests per second allowed against this model.
}

// LocaleHints configures the locale-specific heuristics used by the place
// resolver: address-part indicator tokens and disambiguation keywords. The
// shipped defaults target Vietnamese address conventions; other locales are
// a configuration change, not a code change.
type LocaleHints struct {
	StreetTokens   []string `toml:"street_tokens"`   // Words that mark a street part ("đường", "phố", ...).
	DistrictTokens []string `toml:"district_tokens"` // Words that mark a district or ward part.
	CityTokens     []string `toml:"city_tokens"`     // Words that mark a city or province part.
	MajorCities    []string `toml:"major_cities"`    // City names accepted in place of a city token.
	HintKeywords   []string `toml:"hint_keywords"`   // Category words appended to disambiguate ("quán", "nhà hàng", ...).
	DefaultCountry string   `toml:"default_country"` // Country assumed when the extraction reports none.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other configuration
// structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name            string `toml:"name"`              // Service name, used for telemetry.
		Port            int    `toml:"port"`              // HTTP listen port.
		GoogleProjectId string `toml:"google_project_id"` // Google Cloud project for Vertex AI and telemetry export.
		GoogleLocation  string `toml:"location"`          // Google Cloud location for Vertex AI.
		ThreadPoolSize  int    `toml:"thread_pool_size"`  // Cap on concurrent place lookups per video.
	} `toml:"application"`
	Storage     Storage                `toml:"storage"`      // Upload bucket configuration.
	Database    Database               `toml:"database"`     // PostgreSQL configuration.
	Auth        Auth                   `toml:"auth"`         // Token verification configuration.
	PlaceSearch PlaceSearch            `toml:"place_search"` // Places API configuration.
	AgentModels map[string]GeminiModel `toml:"agent_models"` // Model variants keyed by role ("extractor", "planner", "planner-audio").
	Locale      LocaleHints            `toml:"locale"`       // Resolver locale heuristics.
}

// NewConfig creates a new, initialized Config instance. The map fields must
// be non-nil before the TOML loader populates them.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]GeminiModel),
	}
}
