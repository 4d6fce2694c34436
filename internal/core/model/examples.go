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

// This file provides factory functions for hardcoded example instances of
// the model-facing structs. Embedding a concrete example of the expected
// JSON in the prompt ("few-shot" prompting) keeps the model's output
// consistent and parsable.
package model

// GetExampleExtraction creates a sample VideoExtraction showing the model
// the exact JSON shape expected from video analysis, including the lowercase
// type vocabulary and an entry with a spoken address.
func GetExampleExtraction() *VideoExtraction {
	out := &VideoExtraction{
		City:    "Da Nang",
		Country: "Vietnam",
		Summary: "A day trip around Da Nang covering a seafood restaurant, a famous bridge, and a beachside cafe.",
	}
	out.Locations = append(out.Locations,
		&CandidateLocation{
			Name:    "Bé Mặn",
			Type:    "restaurant",
			Context: "Seafood restaurant on the beach road, the host recommends the grilled scallops.",
			Address: "Võ Nguyên Giáp, Sơn Trà, Đà Nẵng",
		},
		&CandidateLocation{
			Name:    "Dragon Bridge",
			Type:    "attraction",
			Context: "Visited at night to watch the fire show.",
		},
		&CandidateLocation{
			Name:    "43 Factory Coffee Roaster",
			Type:    "cafe",
			Context: "Specialty coffee stop the morning after.",
		},
	)
	return out
}

// GetExampleRoute creates a sample RouteResponse used to show the planner
// model the expected JSON shape, including a hotel suggestion for an
// overnight itinerary.
func GetExampleRoute() *RouteResponse {
	return &RouteResponse{
		Route: []*RouteItem{
			{
				Order:          1,
				Name:           "Bé Mặn",
				Duration:       "1.5 hours",
				Transportation: "motorbike",
				Notes:          "Arrive before 18:00 to beat the dinner rush.",
			},
			{
				Order:          2,
				Name:           "Dragon Bridge",
				Duration:       "1 hour",
				Transportation: "walking",
				Notes:          "Fire show starts at 21:00 on weekends.",
				HotelSuggestion: []*HotelSuggestion{
					{
						Name:       "Riverside boutique hotel",
						Area:       "Hải Châu",
						PriceRange: "$30-50",
						Reason:     "Walking distance from the bridge after the late show.",
					},
				},
			},
		},
		Summary: &RouteSummary{
			TotalDuration:  "5 hours",
			TotalDistance:  "12 km",
			Transportation: "motorbike",
			StartTime:      "17:00",
			OvernightTrip:  true,
			EstimatedCost:  "$60-90",
		},
		Recommendations: []string{
			"Carry a rain poncho between October and December.",
			"Book the hotel before 20:00, weekend availability is tight.",
		},
	}
}
