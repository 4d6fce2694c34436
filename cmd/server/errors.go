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

package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/core/workflow"
)

// writeError maps a service error onto an HTTP status. Validation problems
// echo their message; everything else gets a generic body so internals never
// leak to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case model.IsKind(err, model.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case model.IsKind(err, model.ErrNoFavorites):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no favorite locations to plan a route from"})
	case model.IsKind(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case model.IsKind(err, model.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, workflow.ErrAnalysisFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "video analysis failed"})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
