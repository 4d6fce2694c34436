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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/core/services"
)

// TestInsuranceRecommendations verifies country lookup is case-insensitive
// and results come back best rated first.
func TestInsuranceRecommendations(t *testing.T) {
	svc := services.NewInsuranceService(nil)

	offers, err := svc.Recommendations("Vietnam")
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	assert.LessOrEqual(t, len(offers), 3)
	for i := 1; i < len(offers); i++ {
		assert.GreaterOrEqual(t, offers[i-1].Rating, offers[i].Rating)
	}
	assert.Equal(t, "vietnam_premium", offers[0].Id)

	offers, err = svc.Recommendations("Singapore")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "singapore_basic", offers[0].Id)
}

// TestInsuranceRecommendationsFallback verifies an uncatalogued country gets
// the global packages.
func TestInsuranceRecommendationsFallback(t *testing.T) {
	svc := services.NewInsuranceService(nil)

	offers, err := svc.Recommendations("Atlantis")
	require.NoError(t, err)
	require.NotEmpty(t, offers)
	for _, pkg := range offers {
		assert.Contains(t, pkg.Id, "global")
	}
}

// TestInsuranceRecommendationsRequiresCountry verifies the blank input gate.
func TestInsuranceRecommendationsRequiresCountry(t *testing.T) {
	svc := services.NewInsuranceService(nil)
	_, err := svc.Recommendations("   ")
	assert.True(t, model.IsKind(err, model.ErrValidation))
}

// TestInsuranceCountries verifies the listing is sorted and excludes the
// fallback key.
func TestInsuranceCountries(t *testing.T) {
	svc := services.NewInsuranceService(nil)
	assert.Equal(t, []string{"indonesia", "japan", "malaysia", "philippines", "singapore", "thailand", "vietnam"}, svc.Countries())
}

// TestInsurancePackageByID verifies cross-country package lookup.
func TestInsurancePackageByID(t *testing.T) {
	svc := services.NewInsuranceService(nil)

	pkg, err := svc.PackageByID("thailand_premium")
	require.NoError(t, err)
	assert.Equal(t, "Allianz Thailand", pkg.Provider)

	_, err = svc.PackageByID("mars_basic")
	assert.True(t, model.IsKind(err, model.ErrNotFound))
}
