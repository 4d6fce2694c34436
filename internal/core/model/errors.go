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

package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for the whole application. Services and workflows wrap
// these with operation context; the HTTP layer maps each kind to a status
// code in exactly one place.
var (
	// ErrValidation marks rejected input: missing fields, oversized
	// uploads, wrong MIME types, bad pagination parameters.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing row. It is also returned for rows owned
	// by a different user, so responses never reveal whether an id exists.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an authenticated request that is not allowed to
	// perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrExternalService marks a failure in a downstream dependency
	// (Gemini, Places API, Cloud Storage).
	ErrExternalService = errors.New("external service failure")

	// ErrResponseParse marks model output that could not be decoded into
	// the expected structure.
	ErrResponseParse = errors.New("unparseable model response")

	// ErrNoFavorites is returned by route generation when the user has no
	// favorite locations to plan around.
	ErrNoFavorites = errors.New("no favorite locations")
)

// WrapError attaches an operation name and an underlying cause to a sentinel
// kind. The kind stays reachable through errors.Is; the cause is folded into
// the message so logs keep the detail without widening the unwrap chain.
func WrapError(kind error, op string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", op, kind)
	}
	return fmt.Errorf("%s: %w: %v", op, kind, err)
}

// IsKind reports whether err carries the given sentinel kind.
func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
