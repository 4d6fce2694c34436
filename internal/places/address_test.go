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

package places_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mapmyvid/map-my-vid-go/internal/places"
)

// TestValidateAddress verifies that an address is accepted only when it
// carries a street part, a district part, and a recognizable city.
func TestValidateAddress(t *testing.T) {
	hints := places.DefaultVietnameseHints()

	cases := []struct {
		name    string
		address string
		want    bool
	}{
		{"full address", "123 Đường Lê Lợi, Quận 1, Thành phố Hồ Chí Minh", true},
		{"ascii variant", "123 duong Le Loi, quan 1, thanh pho Ho Chi Minh", true},
		{"major city without city token", "45 Phố Hàng Bạc, Quận Hoàn Kiếm, Hà Nội", true},
		{"missing district", "123 Đường Lê Lợi, Thành phố Hồ Chí Minh", false},
		{"missing street token", "65 Lê Lợi, Quận Hải Châu, Đà Nẵng", false},
		{"missing city", "123 Đường Lê Lợi, Quận 1", false},
		{"empty", "", false},
		{"bare name", "Pizza 4P's", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hints.ValidateAddress(tc.address))
		})
	}
}

// TestValidateAddressDeterministic verifies repeated validation of the same
// input always lands on the same answer.
func TestValidateAddressDeterministic(t *testing.T) {
	hints := places.DefaultVietnameseHints()
	address := "123 Đường Lê Lợi, Quận 1, Thành phố Hồ Chí Minh"
	first := hints.ValidateAddress(address)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, hints.ValidateAddress(address))
	}
}

// TestStripDiacritics verifies accent removal keeps the base letters and that
// the transform is idempotent.
func TestStripDiacritics(t *testing.T) {
	assert.Equal(t, "Le Loi", places.StripDiacritics("Lê Lợi"))
	assert.Equal(t, "Quan an Ngon", places.StripDiacritics("Quán ăn Ngon"))
	assert.Equal(t, "Da Nang", places.StripDiacritics("Đà Nẵng"))

	once := places.StripDiacritics("Phở Thìn 13 Lò Đúc")
	assert.Equal(t, once, places.StripDiacritics(once))
}
