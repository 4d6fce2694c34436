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

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/core/services"
)

// fakeFavorites serves a fixed favorites list.
type fakeFavorites struct {
	favorites []*model.Location
	err       error
}

func (f *fakeFavorites) FavoritesByUser(_ context.Context, _ string) ([]*model.Location, error) {
	return f.favorites, f.err
}

// fakeGenerator returns a scripted response and records the prompt it saw.
type fakeGenerator struct {
	response string
	err      error
	content  []*genai.Content
}

func (f *fakeGenerator) Generate(_ context.Context, content []*genai.Content) (string, error) {
	f.content = content
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func resolvedName(s string) *string { return &s }

func sampleFavorites() []*model.Location {
	return []*model.Location{
		{Id: "loc-1", OriginalName: "Bé Mặn", ResolvedName: resolvedName("Bé Mặn Seafood"), Category: model.CategoryRestaurant, IsFavorite: true},
		{Id: "loc-2", OriginalName: "Dragon Bridge", Category: model.CategoryAttraction, IsFavorite: true},
	}
}

// TestExtractJSON verifies the balanced-brace scan pulls the object out of
// surrounding prose and rejects text without one.
func TestExtractJSON(t *testing.T) {
	raw, err := services.ExtractJSON("Here is your route! {\"route\": [{\"name\": \"a {nested} brace\"}]} Enjoy!")
	require.NoError(t, err)
	assert.Equal(t, "{\"route\": [{\"name\": \"a {nested} brace\"}]}", raw)

	_, err = services.ExtractJSON("no structured data here")
	assert.Error(t, err)

	_, err = services.ExtractJSON("{\"route\": [")
	assert.Error(t, err)

	// Braces inside JSON strings must not confuse the scan.
	raw, err = services.ExtractJSON(`prefix {"note": "open { and close }", "n": 1} suffix`)
	require.NoError(t, err)
	assert.Equal(t, `{"note": "open { and close }", "n": 1}`, raw)
}

// TestIsOvernightTrip exercises the lodging heuristic.
func TestIsOvernightTrip(t *testing.T) {
	cases := []struct {
		name  string
		prefs *model.RoutePreferences
		want  bool
	}{
		{"nil preferences", nil, false},
		{"long trip", &model.RoutePreferences{DurationHours: 13}, true},
		{"evening word", &model.RoutePreferences{StartTime: "evening", DurationHours: 7}, true},
		{"evening clock", &model.RoutePreferences{StartTime: "18:30", DurationHours: 7}, true},
		{"evening but short", &model.RoutePreferences{StartTime: "evening", DurationHours: 6}, false},
		{"morning day trip", &model.RoutePreferences{StartTime: "09:00", DurationHours: 8}, false},
		{"afternoon boundary", &model.RoutePreferences{StartTime: "17:00", DurationHours: 7}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, services.IsOvernightTrip(tc.prefs))
		})
	}
}

// TestGenerateRouteNoFavorites verifies planning refuses an empty favorites
// list with the dedicated error kind.
func TestGenerateRouteNoFavorites(t *testing.T) {
	svc := services.NewRouteService(&fakeFavorites{}, &fakeGenerator{}, &fakeGenerator{})
	_, err := svc.GenerateRoute(context.Background(), "user-1", &model.RoutePreferences{})
	assert.True(t, model.IsKind(err, model.ErrNoFavorites))
}

// TestGenerateRouteParsesAndEnriches verifies the planner response is
// extracted from prose, stops are matched back to saved locations by either
// name, and nil recommendations normalize to an empty slice.
func TestGenerateRouteParsesAndEnriches(t *testing.T) {
	response := `Sure! Here's a plan for your day:
{
  "route": [
    {"order": 1, "name": "Bé Mặn Seafood", "duration": "1.5 hours", "transportation": "walking"},
    {"order": 2, "name": "Dragon Bridge", "duration": "1 hour"},
    {"order": 3, "name": "Invented Stop", "duration": "30 minutes"}
  ],
  "summary": {"total_duration": "4 hours", "transportation": "walking", "overnight_trip": false}
}
Have a great trip!`
	generator := &fakeGenerator{response: response}
	svc := services.NewRouteService(&fakeFavorites{favorites: sampleFavorites()}, generator, &fakeGenerator{})

	out, err := svc.GenerateRoute(context.Background(), "user-1", &model.RoutePreferences{DurationHours: 4})
	require.NoError(t, err)

	require.Len(t, out.Route, 3)
	require.NotNil(t, out.Route[0].Location)
	assert.Equal(t, "loc-1", out.Route[0].Location.Id) // matched on resolved name
	require.NotNil(t, out.Route[1].Location)
	assert.Equal(t, "loc-2", out.Route[1].Location.Id) // matched on original name
	assert.Nil(t, out.Route[2].Location)
	assert.NotNil(t, out.Recommendations)
	assert.Empty(t, out.Recommendations)

	// The prompt carries the favorites, the trip parameters, and the worked
	// response example.
	require.Len(t, generator.content, 1)
	prompt := generator.content[0].Parts[0].Text
	assert.Contains(t, prompt, "Bé Mặn")
	assert.Contains(t, prompt, "Dragon Bridge")
	assert.Contains(t, prompt, "4.0 hours")
	assert.Contains(t, prompt, `"hotel_suggestions"`)
	assert.Contains(t, prompt, `"overnight_trip"`)
}

// TestGenerateRouteUnparseableResponse verifies a prose-only model answer
// maps to the parse error kind.
func TestGenerateRouteUnparseableResponse(t *testing.T) {
	generator := &fakeGenerator{response: "I could not produce a route today."}
	svc := services.NewRouteService(&fakeFavorites{favorites: sampleFavorites()}, generator, &fakeGenerator{})

	_, err := svc.GenerateRoute(context.Background(), "user-1", nil)
	assert.True(t, model.IsKind(err, model.ErrResponseParse))
}

// TestGenerateRouteModelFailure verifies a model error surfaces as an
// external service failure.
func TestGenerateRouteModelFailure(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("model unavailable")}
	svc := services.NewRouteService(&fakeFavorites{favorites: sampleFavorites()}, generator, &fakeGenerator{})

	_, err := svc.GenerateRoute(context.Background(), "user-1", nil)
	assert.True(t, model.IsKind(err, model.ErrExternalService))
}

// TestGenerateRouteFromAudioValidation covers the audio size and type gates.
func TestGenerateRouteFromAudioValidation(t *testing.T) {
	svc := services.NewRouteService(&fakeFavorites{favorites: sampleFavorites()}, &fakeGenerator{}, &fakeGenerator{})

	_, err := svc.GenerateRouteFromAudio(context.Background(), "user-1", nil, "audio/webm")
	assert.True(t, model.IsKind(err, model.ErrValidation))

	oversized := make([]byte, services.MaxAudioBytes+1)
	_, err = svc.GenerateRouteFromAudio(context.Background(), "user-1", oversized, "audio/webm")
	assert.True(t, model.IsKind(err, model.ErrValidation))

	_, err = svc.GenerateRouteFromAudio(context.Background(), "user-1", []byte("audio"), "video/mp4")
	assert.True(t, model.IsKind(err, model.ErrValidation))
}

// TestGenerateRouteFromAudio verifies the recording rides along as an inline
// part next to the prompt.
func TestGenerateRouteFromAudio(t *testing.T) {
	response := `{"route": [{"order": 1, "name": "Dragon Bridge"}], "summary": {}, "recommendations": ["go at night"]}`
	audioGen := &fakeGenerator{response: response}
	svc := services.NewRouteService(&fakeFavorites{favorites: sampleFavorites()}, &fakeGenerator{}, audioGen)

	out, err := svc.GenerateRouteFromAudio(context.Background(), "user-1", []byte("opus-bytes"), "audio/ogg")
	require.NoError(t, err)
	assert.Equal(t, []string{"go at night"}, out.Recommendations)

	require.Len(t, audioGen.content, 1)
	require.Len(t, audioGen.content[0].Parts, 2)
	require.NotNil(t, audioGen.content[0].Parts[1].InlineData)
	assert.Equal(t, "audio/ogg", audioGen.content[0].Parts[1].InlineData.MIMEType)
}
