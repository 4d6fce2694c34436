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

// Package main is the composition root. This file builds the application
// state: configuration, cloud clients, the domain services, and the video
// analysis pipeline, all wired together explicitly.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/mapmyvid/map-my-vid-go/internal/cloud"
	"github.com/mapmyvid/map-my-vid-go/internal/core/services"
	"github.com/mapmyvid/map-my-vid-go/internal/core/workflow"
	"github.com/mapmyvid/map-my-vid-go/internal/places"
)

// StateManager holds the shared dependencies of the server. One instance is
// built at startup; handlers only ever read from it.
type StateManager struct {
	config    *cloud.Config
	cloud     *cloud.ServiceClients
	videos    *services.VideoService
	locations *services.LocationService
	routes    *services.RouteService
	insurance *services.InsuranceService
	analyzer  *workflow.VideoAnalysisWorkflow
}

var state = &StateManager{}

// SetupOS points the configuration loader at the configs directory with the
// "local" runtime override.
func SetupOS() (err error) {
	err = os.Setenv(cloud.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(cloud.EnvConfigRuntime, "local")
	return err
}

// GetConfig is the singleton accessor for the application configuration.
func GetConfig() *cloud.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup os environment: %v\n", err)
		}
		config := cloud.NewConfig()
		cloud.LoadConfig(&config)
		if err := config.Validate(); err != nil {
			log.Fatalf("invalid configuration: %v\n", err)
		}
		state.config = config
	}
	return state.config
}

// InitState builds every service and the analysis pipeline from the loaded
// configuration.
func InitState(ctx context.Context) {
	config := GetConfig()

	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		panic(err)
	}
	state.cloud = cloudClients

	state.videos = services.NewVideoService(cloudClients.DB)
	state.locations = services.NewLocationService(cloudClients.DB)
	state.insurance = services.NewInsuranceService(state.videos)

	searcher := places.NewGoogleSearcher(cloudClients.MapsClient,
		config.PlaceSearch.Language, config.PlaceSearch.Region)
	resolver := places.NewResolver(searcher, localeHints(config),
		time.Duration(config.PlaceSearch.TimeoutInSeconds)*time.Second)

	extractor := cloud.NewModelInvoker("extractor", cloudClients.AgentModels["extractor"])
	planner := cloud.NewModelInvoker("planner", cloudClients.AgentModels["planner"])
	audioPlanner := cloud.NewModelInvoker("planner-audio", cloudClients.AgentModels["planner-audio"])

	state.routes = services.NewRouteService(state.locations, planner, audioPlanner)
	state.analyzer = workflow.NewVideoAnalysisWorkflow(
		state.videos,
		cloudClients.Blobs,
		extractor,
		state.locations,
		resolver,
		config.Application.ThreadPoolSize,
	)
}

// localeHints maps the configured resolver heuristics, falling back to the
// shipped Vietnamese defaults when the config section is empty.
func localeHints(config *cloud.Config) places.LocaleHints {
	hints := places.LocaleHints{
		StreetTokens:   config.Locale.StreetTokens,
		DistrictTokens: config.Locale.DistrictTokens,
		CityTokens:     config.Locale.CityTokens,
		MajorCities:    config.Locale.MajorCities,
		HintKeywords:   config.Locale.HintKeywords,
		DefaultCountry: config.Locale.DefaultCountry,
	}
	if len(hints.StreetTokens) == 0 && len(hints.DistrictTokens) == 0 {
		return places.DefaultVietnameseHints()
	}
	return hints
}
