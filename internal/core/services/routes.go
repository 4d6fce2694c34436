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

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// Audio upload limits for the voice-preferences route variant.
const (
	MaxAudioBytes = 10 << 20
)

var allowedAudioMimeTypes = map[string]bool{
	"audio/webm": true,
	"audio/wav":  true,
	"audio/mp3":  true,
	"audio/mpeg": true,
	"audio/ogg":  true,
}

// Generator is the narrow model surface the planner consumes: multi-modal
// content in, response text out.
type Generator interface {
	Generate(ctx context.Context, content []*genai.Content) (string, error)
}

// FavoriteSource loads the favorited locations route planning starts from.
type FavoriteSource interface {
	FavoritesByUser(ctx context.Context, userID string) ([]*model.Location, error)
}

// RouteService generates an itinerary over the user's favorite locations.
// The model is asked for free-form text expected to contain one JSON object;
// parsing is all-or-nothing, unlike the video pipeline's per-location
// tolerance.
type RouteService struct {
	favorites    FavoriteSource
	planner      Generator
	audioPlanner Generator
}

// NewRouteService wires the planner over its favorite source and the two
// model variants (text preferences and spoken preferences).
func NewRouteService(favorites FavoriteSource, planner, audioPlanner Generator) *RouteService {
	return &RouteService{favorites: favorites, planner: planner, audioPlanner: audioPlanner}
}

// GenerateRoute plans an itinerary from structured preferences. Fails with
// ErrNoFavorites when the user has nothing favorited.
func (s *RouteService) GenerateRoute(ctx context.Context, userID string, prefs *model.RoutePreferences) (*model.RouteResponse, error) {
	favorites, err := s.loadFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := buildRoutePrompt(favorites, prefs)
	text, err := s.planner.Generate(ctx, genai.Text(prompt))
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "routes.generate", err)
	}
	return parseRouteResponse(text, favorites)
}

// GenerateRouteFromAudio plans an itinerary from a voice recording carrying
// the user's preferences. The recording is sent inline to the audio-capable
// model variant.
func (s *RouteService) GenerateRouteFromAudio(ctx context.Context, userID string, audio []byte, mimeType string) (*model.RouteResponse, error) {
	if len(audio) == 0 {
		return nil, model.WrapError(model.ErrValidation, "routes.generate_audio", errors.New("audio is required"))
	}
	if len(audio) > MaxAudioBytes {
		return nil, model.WrapError(model.ErrValidation, "routes.generate_audio", errors.New("audio exceeds 10MB limit"))
	}
	if !allowedAudioMimeTypes[mimeType] {
		return nil, model.WrapError(model.ErrValidation, "routes.generate_audio", fmt.Errorf("unsupported audio type %q", mimeType))
	}

	favorites, err := s.loadFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt := buildAudioRoutePrompt(favorites)
	content := []*genai.Content{{
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{Data: audio, MIMEType: mimeType}},
		},
	}}
	text, err := s.audioPlanner.Generate(ctx, content)
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "routes.generate_audio", err)
	}
	return parseRouteResponse(text, favorites)
}

func (s *RouteService) loadFavorites(ctx context.Context, userID string) ([]*model.Location, error) {
	favorites, err := s.favorites.FavoritesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, model.WrapError(model.ErrNoFavorites, "routes.favorites", nil)
	}
	return favorites, nil
}

// IsOvernightTrip applies the lodging heuristic: anything over twelve hours,
// or an evening start longer than six, spans the night.
func IsOvernightTrip(prefs *model.RoutePreferences) bool {
	if prefs == nil {
		return false
	}
	duration := prefs.DurationHours
	if duration > 12 {
		return true
	}
	return isEveningStart(prefs.StartTime) && duration > 6
}

func isEveningStart(startTime string) bool {
	if strings.EqualFold(startTime, "evening") {
		return true
	}
	var hour, minute int
	if _, err := fmt.Sscanf(startTime, "%d:%d", &hour, &minute); err == nil {
		return hour >= 17
	}
	return false
}

func buildRoutePrompt(favorites []*model.Location, prefs *model.RoutePreferences) string {
	if prefs == nil {
		prefs = &model.RoutePreferences{}
	}
	duration := prefs.DurationHours
	if duration == 0 {
		duration = 8
	}
	startTime := prefs.StartTime
	if startTime == "" {
		startTime = "morning"
	}
	transportation := prefs.Transportation
	if transportation == "" {
		transportation = "walking"
	}
	overnight := IsOvernightTrip(prefs)

	var b strings.Builder
	b.WriteString("You are a travel planning assistant. Build an optimal day route over the traveler's favorite saved places.\n\n")
	b.WriteString("FAVORITE PLACES:\n")
	b.WriteString(describeLocations(favorites))
	fmt.Fprintf(&b, "\nTRIP PARAMETERS:\n- Start: %s\n- Duration: %.1f hours\n- Transportation: %s\n", startTime, duration, transportation)
	if prefs.StartLocation != "" {
		fmt.Fprintf(&b, "- Starting from: %s\n", prefs.StartLocation)
	}
	if prefs.Interests != "" {
		fmt.Fprintf(&b, "- Emphasis: %s\n", prefs.Interests)
	}
	fmt.Fprintf(&b, "- Overnight trip: %v\n", overnight)
	b.WriteString("\nOrder the stops sensibly by distance and opening hours, suggest how long to stay at each, ")
	b.WriteString("how to travel between them, and estimate total duration and distance.\n")
	if overnight {
		b.WriteString("This trip spans the night: include two or three lodging suggestions near the route in the hotel_suggestions of the relevant stop, with area and price range.\n")
	}
	b.WriteString("\nRespond with a single JSON object shaped like this example:\n")
	b.WriteString(routeResponseShape())
	return b.String()
}

func buildAudioRoutePrompt(favorites []*model.Location) string {
	var b strings.Builder
	b.WriteString("You are a travel planning assistant. The traveler states their preferences in the attached voice recording. ")
	b.WriteString("Listen for timing, duration, transportation, and interests, then build an optimal route over their favorite saved places.\n\n")
	b.WriteString("FAVORITE PLACES:\n")
	b.WriteString(describeLocations(favorites))
	b.WriteString("\nIf the traveler mentions staying overnight, include lodging suggestions near the route in the hotel_suggestions of the relevant stop.\n")
	b.WriteString("\nRespond with a single JSON object shaped like this example:\n")
	b.WriteString(routeResponseShape())
	return b.String()
}

// routeResponseShape renders the worked itinerary example embedded in every
// planner prompt.
func routeResponseShape() string {
	example, _ := json.MarshalIndent(model.GetExampleRoute(), "", "  ")
	return string(example)
}

func describeLocations(favorites []*model.Location) string {
	var b strings.Builder
	for i, loc := range favorites {
		name := loc.OriginalName
		if loc.ResolvedName != nil && *loc.ResolvedName != "" {
			name = fmt.Sprintf("%s (%s)", loc.OriginalName, *loc.ResolvedName)
		}
		fmt.Fprintf(&b, "%d. %s [%s]\n", i+1, name, loc.Category)
		if loc.FormattedAddress != nil && *loc.FormattedAddress != "" {
			fmt.Fprintf(&b, "   Address: %s\n", *loc.FormattedAddress)
		}
		if loc.Latitude != nil && loc.Longitude != nil {
			fmt.Fprintf(&b, "   Coordinates: %f, %f\n", *loc.Latitude, *loc.Longitude)
		}
		if loc.Context != "" {
			fmt.Fprintf(&b, "   Context: %s\n", loc.Context)
		}
	}
	return b.String()
}

// ExtractJSON returns the first balanced top-level {...} substring in text.
// The planner model wraps its JSON in prose more often than not; everything
// around the object is ignored.
func ExtractJSON(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", errors.New("no JSON object in text")
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", errors.New("unbalanced JSON object in text")
}

// parseRouteResponse decodes the model text and enriches each stop with the
// matching saved location. A stop matches when its name equals either the
// original extracted name or the resolved place name; unmatched stops keep a
// nil location reference.
func parseRouteResponse(text string, favorites []*model.Location) (*model.RouteResponse, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, model.WrapError(model.ErrResponseParse, "routes.parse", err)
	}
	route := &model.RouteResponse{}
	if err := json.Unmarshal([]byte(raw), route); err != nil {
		return nil, model.WrapError(model.ErrResponseParse, "routes.parse", err)
	}

	for _, item := range route.Route {
		item.Location = matchFavorite(item.Name, favorites)
	}
	if route.Recommendations == nil {
		route.Recommendations = []string{}
	}
	return route, nil
}

func matchFavorite(name string, favorites []*model.Location) *model.Location {
	for _, loc := range favorites {
		if loc.OriginalName == name {
			return loc
		}
		if loc.ResolvedName != nil && *loc.ResolvedName == name {
			return loc
		}
	}
	return nil
}
