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

// Package testutil supports the test suite: it points the configuration
// loader at the test TOML files and caches the loaded config across tests.
package testutil

import (
	"log"
	"log/slog"
	"os"
	"testing"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/mapmyvid/map-my-vid-go/internal/cloud"
)

type stateManager struct {
	config *cloud.Config
}

// state caches the configuration so it is loaded once per test run.
var state = &stateManager{}

// HandleErr fails the test when err is set.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// NewTestLogger returns a logger whose records flow through the OpenTelemetry
// bridge, matching how log output is handled in production.
func NewTestLogger(name string) *slog.Logger {
	return otelslog.NewLogger(name)
}

// SetupOS points the config loader at configs/.env.toml with the test
// runtime override.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "test")
	return err
}

// GetConfig is the singleton accessor for the test configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		state.config = config
	}
	return state.config
}
