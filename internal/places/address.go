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

package places

import "strings"

// ValidateAddress reports whether an extracted address is complete enough to
// use as a search hint. It must contain, case-insensitively, at least one
// street indicator, one district indicator, and one city indicator (a
// recognized major city name also satisfies the city requirement).
//
// This is a quality gate, not strict validation: an address that fails is
// dropped from query generation, never rejected outright. The function is
// pure; calling it twice on the same input always yields the same answer.
func (h LocaleHints) ValidateAddress(address string) bool {
	lower := strings.ToLower(strings.TrimSpace(address))
	if lower == "" {
		return false
	}
	if !containsAny(lower, h.StreetTokens) {
		return false
	}
	if !containsAny(lower, h.DistrictTokens) {
		return false
	}
	return containsAny(lower, h.CityTokens) || containsAny(lower, h.MajorCities)
}

func containsAny(lower string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(lower, strings.ToLower(token)) {
			return true
		}
	}
	return false
}
