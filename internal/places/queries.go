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

import (
	"fmt"
	"strings"
)

// querySet accumulates candidate query strings, preserving insertion order
// and dropping duplicates after whitespace normalization. Diacritic-stripped
// variants of different inputs can coincide; the set keeps only the first.
type querySet struct {
	seen map[string]struct{}
	out  []string
}

func newQuerySet() *querySet {
	return &querySet{seen: make(map[string]struct{})}
}

func (s *querySet) add(q string) {
	q = collapseSpaces(q)
	q = strings.Trim(q, ", ")
	if q == "" {
		return
	}
	if _, dup := s.seen[q]; dup {
		return
	}
	s.seen[q] = struct{}{}
	s.out = append(s.out, q)
}

// BuildQueries produces the ordered candidate query list for one extracted
// location. The combinations, in order: name alone; name+city;
// name+city+country; then the address combinations when the address passes
// ValidateAddress (name+address, name+address+city, name+address+city+
// country, address alone, address+city). Each combination is followed by its
// diacritic-stripped form, and keyword-suffixed variants come last. There is
// no scoring; the resolver tries them in exactly this order.
func (h LocaleHints) BuildQueries(name, address, city, country string) []string {
	if country == "" {
		country = h.DefaultCountry
	}

	base := []string{name}
	if city != "" {
		base = append(base, joinParts(name, city))
	}
	base = append(base, joinParts(name, city, country))

	if h.ValidateAddress(address) {
		base = append(base, joinParts(name, address))
		if city != "" {
			base = append(base, joinParts(name, address, city))
		}
		base = append(base, joinParts(name, address, city, country))
		base = append(base, address)
		if city != "" {
			base = append(base, joinParts(address, city))
		}
	}

	set := newQuerySet()
	for _, q := range base {
		set.add(q)
		set.add(StripDiacritics(q))
	}
	for _, kw := range h.HintKeywords {
		set.add(fmt.Sprintf("%s %s, %s %s", name, kw, city, country))
	}
	return set.out
}

// joinParts comma-joins the non-empty parts.
func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
