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

package cloud_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapmyvid/map-my-vid-go/internal/cloud"
)

const baseToml = `
[application]
name = "map-my-vid-server"
port = 8080
google_project_id = "base-project"
thread_pool_size = 4

[storage]
video_bucket = "base-bucket"

[place_search]
language = "vi"
region = "vn"

[agent_models.extractor]
model = "gemini-2.5-flash-lite"
temperature = 0.3
`

// Map sections are replaced whole by the loader, so the override restates the
// full extractor section rather than just the field it changes.
const overrideToml = `
[application]
google_project_id = "override-project"

[agent_models.extractor]
model = "gemini-2.5-flash-lite"
temperature = 0.0
`

func writeConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.toml"), []byte(baseToml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.staging.toml"), []byte(overrideToml), 0o644))
	return dir
}

// TestLoadConfigOverlay verifies the runtime file overwrites base values
// while untouched base settings survive.
func TestLoadConfigOverlay(t *testing.T) {
	dir := writeConfigDir(t)
	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "staging")

	config := cloud.NewConfig()
	cloud.LoadConfig(config)

	assert.Equal(t, "override-project", config.Application.GoogleProjectId)
	assert.Equal(t, "map-my-vid-server", config.Application.Name)
	assert.Equal(t, "base-bucket", config.Storage.VideoBucket)

	extractor, ok := config.AgentModels["extractor"]
	require.True(t, ok)
	assert.Equal(t, "gemini-2.5-flash-lite", extractor.Model)
	assert.Zero(t, extractor.Temperature)
}

// TestLoadConfigMapSectionsReplaceWhole pins the loader's contract for map
// sections: an override touching a model replaces that model's section
// entirely, so partial restatement loses the base fields.
func TestLoadConfigMapSectionsReplaceWhole(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.toml"), []byte(baseToml), 0o644))
	partial := "[agent_models.extractor]\ntemperature = 0.7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.partial.toml"), []byte(partial), 0o644))
	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "partial")

	config := cloud.NewConfig()
	cloud.LoadConfig(config)

	extractor := config.AgentModels["extractor"]
	assert.Empty(t, extractor.Model)
	assert.InDelta(t, 0.7, extractor.Temperature, 0.001)
}

// TestLoadConfigBaseOnly verifies a runtime with no override file falls back
// to the base configuration.
func TestLoadConfigBaseOnly(t *testing.T) {
	dir := writeConfigDir(t)
	t.Setenv(cloud.EnvConfigFilePrefix, dir)
	t.Setenv(cloud.EnvConfigRuntime, "nonexistent")

	config := cloud.NewConfig()
	cloud.LoadConfig(config)

	assert.Equal(t, "base-project", config.Application.GoogleProjectId)
}

func validConfig() *cloud.Config {
	config := cloud.NewConfig()
	config.Application.GoogleProjectId = "p"
	config.Storage.VideoBucket = "b"
	config.Database.DSN = "postgres://localhost/mmv"
	config.Auth.JWTSecret = "s"
	config.PlaceSearch.APIKey = "k"
	config.AgentModels["extractor"] = cloud.GeminiModel{Model: "gemini-2.5-flash-lite"}
	return config
}

// TestValidate covers the fail-fast checks and the worker pool default.
func TestValidate(t *testing.T) {
	config := validConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, 4, config.Application.ThreadPoolSize)

	config = validConfig()
	config.Application.ThreadPoolSize = 2
	require.NoError(t, config.Validate())
	assert.Equal(t, 2, config.Application.ThreadPoolSize)

	missing := validConfig()
	missing.Auth.JWTSecret = ""
	assert.Error(t, missing.Validate())

	missing = validConfig()
	delete(missing.AgentModels, "extractor")
	assert.Error(t, missing.Validate())
}
