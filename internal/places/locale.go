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

// Package places resolves AI-extracted location candidates to real places
// through the Google Places API. Resolution is heuristic: a deduplicated,
// ordered list of query variants is tried against two search endpoints and
// the first hit wins. The heuristics themselves (address-part indicator
// tokens, disambiguation keywords) are injected as LocaleHints so the
// package has no hardcoded locale knowledge.
package places

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LocaleHints parameterizes the resolver's text heuristics for one locale:
// which words indicate the street, district, and city parts of an address,
// which bare city names are recognized, and which category keywords help
// disambiguate short place names.
type LocaleHints struct {
	StreetTokens   []string // Words marking a street part.
	DistrictTokens []string // Words marking a district or ward part.
	CityTokens     []string // Words marking a city or province part.
	MajorCities    []string // City names accepted in place of a city token.
	HintKeywords   []string // Category words appended to ambiguous names.
	DefaultCountry string   // Country assumed when the extraction reports none.
}

// DefaultVietnameseHints returns the hint set for Vietnamese addresses, the
// locale the product launched with. Deployments for other locales override
// these through configuration.
func DefaultVietnameseHints() LocaleHints {
	return LocaleHints{
		StreetTokens: []string{
			"đường", "duong", "phố", "pho", "street", "đại lộ", "dai lo",
		},
		DistrictTokens: []string{
			"quận", "quan", "huyện", "huyen", "phường", "phuong", "xã", "xa",
			"district", "ward",
		},
		CityTokens: []string{
			"thành phố", "thanh pho", "tp", "tp.", "tỉnh", "tinh", "city",
		},
		MajorCities: []string{
			"hà nội", "ha noi", "hanoi",
			"hồ chí minh", "ho chi minh", "hcm", "sài gòn", "sai gon", "saigon",
			"đà nẵng", "da nang", "danang",
			"huế", "hue",
			"hội an", "hoi an",
			"nha trang",
			"đà lạt", "da lat", "dalat",
			"cần thơ", "can tho",
		},
		HintKeywords: []string{"quán", "cửa hàng", "tiệm", "nhà hàng", "quán ăn"},
		DefaultCountry: "Vietnam",
	}
}

// diacriticStripper removes combining accent marks after NFD decomposition.
// The base letters survive, so "Lê Lợi" becomes "Le Loi".
var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// đ carries no combining mark and does not decompose, so it needs an explicit
// mapping.
var dStrokeReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

// StripDiacritics returns in with accents removed and whitespace collapsed.
// On a transform error the input is returned unchanged; a missed variant is
// better than a lost one.
func StripDiacritics(in string) string {
	out, _, err := transform.String(diacriticStripper, in)
	if err != nil {
		out = in
	}
	return collapseSpaces(dStrokeReplacer.Replace(out))
}

func collapseSpaces(in string) string {
	return strings.Join(strings.Fields(in), " ")
}
