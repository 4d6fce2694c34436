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
	"errors"
	"sort"
	"strings"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// InsuranceService serves the static travel insurance catalog. The dataset
// is curated, not fetched; a country without dedicated packages falls back
// to the global offerings.
type InsuranceService struct {
	packages map[string][]*model.InsurancePackage
	videos   *VideoService
}

// NewInsuranceService builds the catalog. The video service is used to
// recommend packages from a video's detected country.
func NewInsuranceService(videos *VideoService) *InsuranceService {
	return &InsuranceService{
		packages: insuranceCatalog(),
		videos:   videos,
	}
}

// Recommendations returns up to three packages for a country, best rated
// first. Unknown countries get the default catalog.
func (s *InsuranceService) Recommendations(country string) ([]*model.InsurancePackage, error) {
	if strings.TrimSpace(country) == "" {
		return nil, model.WrapError(model.ErrValidation, "insurance.recommendations", errors.New("country is required"))
	}
	key := strings.ToLower(strings.TrimSpace(country))
	offers, ok := s.packages[key]
	if !ok {
		offers = s.packages["default"]
	}
	sorted := make([]*model.InsurancePackage, len(offers))
	copy(sorted, offers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	return sorted, nil
}

// RecommendationsForVideo recommends packages using the destination country
// detected on one of the user's videos. A video without a detected country
// falls back to the default catalog.
func (s *InsuranceService) RecommendationsForVideo(ctx context.Context, userID, videoID string) ([]*model.InsurancePackage, error) {
	video, err := s.videos.GetByUser(ctx, userID, videoID)
	if err != nil {
		return nil, err
	}
	country := "default"
	if video.Country != nil && *video.Country != "" {
		country = *video.Country
	}
	return s.Recommendations(country)
}

// Countries lists the countries with a dedicated catalog entry.
func (s *InsuranceService) Countries() []string {
	out := make([]string, 0, len(s.packages))
	for key := range s.packages {
		if key != "default" {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// PackageByID looks a package up across all countries.
func (s *InsuranceService) PackageByID(id string) (*model.InsurancePackage, error) {
	for _, offers := range s.packages {
		for _, pkg := range offers {
			if pkg.Id == id {
				return pkg, nil
			}
		}
	}
	return nil, model.WrapError(model.ErrNotFound, "insurance.package", nil)
}

func insuranceCatalog() map[string][]*model.InsurancePackage {
	usd := func(daily, weekly, monthly float64) model.InsurancePrice {
		return model.InsurancePrice{Daily: daily, Weekly: weekly, Monthly: monthly, Currency: "USD"}
	}
	return map[string][]*model.InsurancePackage{
		"vietnam": {
			{
				Id:               "vietnam_basic",
				Name:             "Vietnam Travel Basic",
				Provider:         "Bao Viet Insurance",
				Coverage:         []string{"Medical expenses up to $50,000", "Trip cancellation", "Baggage loss", "Emergency evacuation"},
				Price:            usd(8, 45, 150),
				Rating:           4.2,
				Features:         []string{"24/7 emergency support", "Vietnamese language support", "Local hospital network"},
				Description:      "Comprehensive travel insurance designed specifically for Vietnam with local support.",
				CoverageLimit:    "$50,000",
				Deductible:       "$100",
				EmergencyContact: "+84-24-3824-0123",
				ClaimProcess:     "Online claim submission within 48 hours",
				Exclusions:       []string{"Pre-existing conditions", "Extreme sports", "War zones"},
				RecommendedFor:   []string{"Budget travelers", "Short-term visits", "City exploration"},
			},
			{
				Id:               "vietnam_premium",
				Name:             "Vietnam Travel Premium",
				Provider:         "Prudential Vietnam",
				Coverage:         []string{"Medical expenses up to $100,000", "Trip cancellation", "Baggage loss", "Emergency evacuation", "Adventure sports"},
				Price:            usd(15, 85, 280),
				Rating:           4.6,
				Features:         []string{"24/7 emergency support", "Adventure sports coverage", "VIP hospital access", "Trip interruption"},
				Description:      "Premium travel insurance with comprehensive coverage for all types of travelers.",
				CoverageLimit:    "$100,000",
				Deductible:       "$50",
				EmergencyContact: "+84-28-3824-0123",
				ClaimProcess:     "Priority claim processing within 24 hours",
				Exclusions:       []string{"War zones", "Illegal activities"},
				RecommendedFor:   []string{"Adventure travelers", "Long-term stays", "Business travelers"},
			},
		},
		"thailand": {
			{
				Id:               "thailand_basic",
				Name:             "Thailand Travel Basic",
				Provider:         "AIA Thailand",
				Coverage:         []string{"Medical expenses up to $75,000", "Trip cancellation", "Baggage loss", "Emergency evacuation"},
				Price:            usd(12, 70, 220),
				Rating:           4.3,
				Features:         []string{"24/7 emergency support", "Thai language support", "Bangkok hospital network"},
				Description:      "Essential travel insurance for Thailand with comprehensive medical coverage.",
				CoverageLimit:    "$75,000",
				Deductible:       "$150",
				EmergencyContact: "+66-2-123-4567",
				ClaimProcess:     "Online claim submission with Thai language support",
				Exclusions:       []string{"Pre-existing conditions", "Motorcycle accidents without helmet"},
				RecommendedFor:   []string{"First-time visitors", "Beach destinations", "Cultural tours"},
			},
			{
				Id:               "thailand_premium",
				Name:             "Thailand Travel Premium",
				Provider:         "Allianz Thailand",
				Coverage:         []string{"Medical expenses up to $150,000", "Trip cancellation", "Baggage loss", "Emergency evacuation", "Adventure activities"},
				Price:            usd(20, 120, 380),
				Rating:           4.7,
				Features:         []string{"24/7 emergency support", "Adventure sports coverage", "VIP medical services", "Trip delay coverage"},
				Description:      "Premium coverage for all types of travel in Thailand including adventure activities.",
				CoverageLimit:    "$150,000",
				Deductible:       "$100",
				EmergencyContact: "+66-2-987-6543",
				ClaimProcess:     "Express claim processing with English support",
				Exclusions:       []string{"War zones", "Illegal activities"},
				RecommendedFor:   []string{"Adventure travelers", "Island hopping", "Luxury travelers"},
			},
		},
		"japan": {
			{
				Id:               "japan_basic",
				Name:             "Japan Travel Basic",
				Provider:         "Tokio Marine",
				Coverage:         []string{"Medical expenses up to $100,000", "Trip cancellation", "Baggage loss", "Emergency evacuation"},
				Price:            usd(18, 110, 350),
				Rating:           4.5,
				Features:         []string{"24/7 emergency support", "Japanese language support", "JR Pass coverage"},
				Description:      "Comprehensive travel insurance designed for Japan with local expertise.",
				CoverageLimit:    "$100,000",
				Deductible:       "$200",
				EmergencyContact: "+81-3-1234-5678",
				ClaimProcess:     "Online claim with Japanese language support",
				Exclusions:       []string{"Pre-existing conditions", "Natural disasters"},
				RecommendedFor:   []string{"City exploration", "Cultural experiences", "First-time visitors"},
			},
			{
				Id:               "japan_premium",
				Name:             "Japan Travel Premium",
				Provider:         "Sompo Japan",
				Coverage:         []string{"Medical expenses up to $200,000", "Trip cancellation", "Baggage loss", "Emergency evacuation", "Winter sports"},
				Price:            usd(28, 170, 550),
				Rating:           4.8,
				Features:         []string{"24/7 emergency support", "Winter sports coverage", "Shinkansen coverage", "VIP services"},
				Description:      "Premium travel insurance with extensive coverage for all Japan activities.",
				CoverageLimit:    "$200,000",
				Deductible:       "$100",
				EmergencyContact: "+81-3-9876-5432",
				ClaimProcess:     "Priority processing with multilingual support",
				Exclusions:       []string{"War zones", "Illegal activities"},
				RecommendedFor:   []string{"Winter sports", "Long-term stays", "Business travelers"},
			},
		},
		"singapore": {
			{
				Id:               "singapore_basic",
				Name:             "Singapore Travel Basic",
				Provider:         "Great Eastern",
				Coverage:         []string{"Medical expenses up to $80,000", "Trip cancellation", "Baggage loss", "Emergency evacuation"},
				Price:            usd(15, 90, 280),
				Rating:           4.4,
				Features:         []string{"24/7 emergency support", "English language support", "Singapore hospital network"},
				Description:      "Essential travel insurance for Singapore with comprehensive coverage.",
				CoverageLimit:    "$80,000",
				Deductible:       "$150",
				EmergencyContact: "+65-6123-4567",
				ClaimProcess:     "Online claim submission with English support",
				Exclusions:       []string{"Pre-existing conditions", "Adventure sports"},
				RecommendedFor:   []string{"Business travelers", "City exploration", "Short stays"},
			},
		},
		"malaysia": {
			{
				Id:               "malaysia_basic",
				Name:             "Malaysia Travel Basic",
				Provider:         "Tune Protect",
				Coverage:         []string{"Medical expenses up to $60,000", "Trip cancellation", "Baggage loss", "Emergency evacuation"},
				Price:            usd(10, 60, 190),
				Rating:           4.1,
				Features:         []string{"24/7 emergency support", "Malay language support", "Local hospital network"},
				Description:      "Affordable travel insurance for Malaysia with essential coverage.",
				CoverageLimit:    "$60,000",
				Deductible:       "$100",
				EmergencyContact: "+60-3-1234-5678",
				ClaimProcess:     "Online claim submission",
				Exclusions:       []string{"Pre-existing conditions", "Extreme sports"},
				RecommendedFor:   []string{"Budget travelers", "Beach destinations", "Cultural tours"},
			},
		},
		"indonesia": {
			{
				Id:               "indonesia_basic",
				Name:             "Indonesia Travel Basic",
				Provider:         "Allianz Indonesia",
				Coverage:         []string{"Medical expenses up to $70,000", "Trip cancellation", "Baggage loss", "Emergency evacuation"},
				Price:            usd(12, 70, 220),
				Rating:           4.2,
				Features:         []string{"24/7 emergency support", "Indonesian language support", "Island coverage"},
				Description:      "Comprehensive travel insurance for Indonesia including island hopping.",
				CoverageLimit:    "$70,000",
				Deductible:       "$150",
				EmergencyContact: "+62-21-1234-5678",
				ClaimProcess:     "Online claim with local support",
				Exclusions:       []string{"Pre-existing conditions", "Volcano eruptions"},
				RecommendedFor:   []string{"Island hopping", "Adventure travel", "Cultural experiences"},
			},
		},
		"philippines": {
			{
				Id:               "philippines_basic",
				Name:             "Philippines Travel Basic",
				Provider:         "Sun Life Philippines",
				Coverage:         []string{"Medical expenses up to $65,000", "Trip cancellation", "Baggage loss", "Emergency evacuation"},
				Price:            usd(11, 65, 200),
				Rating:           4.0,
				Features:         []string{"24/7 emergency support", "English language support", "Island coverage"},
				Description:      "Essential travel insurance for the Philippines with island coverage.",
				CoverageLimit:    "$65,000",
				Deductible:       "$125",
				EmergencyContact: "+63-2-1234-5678",
				ClaimProcess:     "Online claim submission",
				Exclusions:       []string{"Pre-existing conditions", "Typhoon-related claims"},
				RecommendedFor:   []string{"Island hopping", "Beach destinations", "Adventure travel"},
			},
		},
		"default": {
			{
				Id:               "global_basic",
				Name:             "Global Travel Basic",
				Provider:         "World Nomads",
				Coverage:         []string{"Medical expenses up to $100,000", "Trip cancellation", "Baggage loss", "Emergency evacuation"},
				Price:            usd(15, 90, 280),
				Rating:           4.3,
				Features:         []string{"24/7 emergency support", "Multi-language support", "Global coverage"},
				Description:      "Comprehensive travel insurance for worldwide travel.",
				CoverageLimit:    "$100,000",
				Deductible:       "$200",
				EmergencyContact: "+1-800-123-4567",
				ClaimProcess:     "Online claim submission with global support",
				Exclusions:       []string{"Pre-existing conditions", "War zones"},
				RecommendedFor:   []string{"World travelers", "Backpackers", "Long-term travel"},
			},
			{
				Id:               "global_premium",
				Name:             "Global Travel Premium",
				Provider:         "Allianz Global",
				Coverage:         []string{"Medical expenses up to $250,000", "Trip cancellation", "Baggage loss", "Emergency evacuation", "Adventure sports"},
				Price:            usd(25, 150, 480),
				Rating:           4.6,
				Features:         []string{"24/7 emergency support", "Adventure sports coverage", "VIP services", "Global network"},
				Description:      "Premium travel insurance with extensive global coverage.",
				CoverageLimit:    "$250,000",
				Deductible:       "$100",
				EmergencyContact: "+1-800-987-6543",
				ClaimProcess:     "Priority processing with global support",
				Exclusions:       []string{"War zones", "Illegal activities"},
				RecommendedFor:   []string{"Adventure travelers", "Business travelers", "Luxury travel"},
			},
		},
	}
}
