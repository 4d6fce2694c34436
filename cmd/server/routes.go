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
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mapmyvid/map-my-vid-go/internal/auth"
	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/core/services"
)

// RouteRouter sets up the itinerary generation endpoints. Both variants plan
// over the caller's favorited locations; one takes structured preferences,
// the other a voice recording.
func RouteRouter(r *gin.RouterGroup) {
	agent := r.Group("/ai-agent")
	{
		agent.POST("/generate-route", func(c *gin.Context) {
			prefs := &model.RoutePreferences{}
			if err := c.ShouldBindJSON(prefs); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
			out, err := state.routes.GenerateRoute(c.Request.Context(), auth.UserID(c), prefs)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		agent.POST("/generate-route-audio", func(c *gin.Context) {
			file, err := c.FormFile("audio")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
				return
			}
			if file.Size > services.MaxAudioBytes {
				c.JSON(http.StatusBadRequest, gin.H{"error": "audio exceeds 10MB limit"})
				return
			}
			f, err := file.Open()
			if err != nil {
				writeError(c, err)
				return
			}
			defer f.Close()
			data, err := io.ReadAll(f)
			if err != nil {
				writeError(c, err)
				return
			}

			out, err := state.routes.GenerateRouteFromAudio(c.Request.Context(),
				auth.UserID(c), data, file.Header.Get("Content-Type"))
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}
}
