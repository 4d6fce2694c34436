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

// This file builds the ServiceClients container, the single place where all
// external connections are initialized. It is created once at startup from
// the loaded Config and passed to the composition root; nothing else in the
// application opens its own clients.
package cloud

import (
	"context"
	"database/sql"
	"time"

	"cloud.google.com/go/storage"
	_ "github.com/jackc/pgx/v5/stdlib"
	"google.golang.org/genai"
	"googlemaps.github.io/maps"
)

// ServiceClients is a container for all clients that talk to external
// services. Constructing them together keeps dependency wiring explicit and
// makes tests able to substitute any of them.
type ServiceClients struct {
	StorageClient *storage.Client // Google Cloud Storage, for raw video uploads.
	GenAIClient   *genai.Client   // Gemini via Vertex AI.
	MapsClient    *maps.Client    // Google Places API, for location resolution.
	DB            *sql.DB         // PostgreSQL, via the pgx stdlib driver.
	Blobs         *BlobStore      // Upload bucket accessor built on StorageClient.
	// AgentModels holds the configured, rate-limited Gemini model variants
	// keyed by role ("extractor", "planner", "planner-audio").
	AgentModels map[string]*QuotaAwareGenerativeAIModel
}

// Close releases all client connections. Used by tests and controlled
// shutdowns; in production the process exit reclaims them anyway.
func (c *ServiceClients) Close() {
	_ = c.StorageClient.Close()
	_ = c.DB.Close()
}

// NewCloudServiceClients initializes every external dependency from the
// configuration. Any client that fails to construct aborts startup; the
// database connection is verified with a ping so a bad DSN surfaces here
// rather than on the first query.
func NewCloudServiceClients(ctx context.Context, config *Config) (clients *ServiceClients, err error) {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  config.Application.GoogleProjectId,
		Location: config.Application.GoogleLocation,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, err
	}

	mc, err := maps.NewClient(maps.WithAPIKey(config.PlaceSearch.APIKey))
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("pgx", config.Database.DSN)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, err
	}

	// Build each configured model variant with its generation settings and
	// wrap it in the client-side rate limiter.
	agentModels := make(map[string]*QuotaAwareGenerativeAIModel)
	for amKey := range config.AgentModels {
		values := config.AgentModels[amKey]
		model := &genai.GenerateContentConfig{
			Temperature:       genai.Ptr[float32](values.Temperature),
			TopP:              genai.Ptr[float32](values.TopP),
			TopK:              genai.Ptr[float32](values.TopK),
			MaxOutputTokens:   values.MaxTokens,
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: values.SystemInstructions}}},
			SafetySettings:    DefaultSafetySettings,
			ResponseMIMEType:  values.OutputFormat,
			Tools:             []*genai.Tool{},
		}
		agentModels[amKey] = NewQuotaAwareModel(model, values.Model, gc.Models, values.RateLimit)
	}

	clients = &ServiceClients{
		StorageClient: sc,
		GenAIClient:   gc,
		MapsClient:    mc,
		DB:            db,
		Blobs:         NewBlobStore(sc, config.Storage.VideoBucket),
		AgentModels:   agentModels,
	}

	return clients, nil
}
