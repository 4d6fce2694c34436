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
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mapmyvid/map-my-vid-go/internal/auth"
	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/core/services"
)

// locationUpdateRequest is the PATCH body for editing a saved location.
type locationUpdateRequest struct {
	Name     *string `json:"name"`
	Context  *string `json:"context"`
	Category *string `json:"category"`
}

// favoriteRequest is the PUT body for setting the favorite flag explicitly.
type favoriteRequest struct {
	Favorite bool `json:"favorite"`
}

// LocationRouter sets up the endpoints for browsing and curating extracted
// locations. All reads and writes go through the ownership join; a location
// on another user's video is indistinguishable from a missing one.
func LocationRouter(r *gin.RouterGroup) {
	locations := r.Group("/locations")
	{
		locations.GET("", func(c *gin.Context) {
			page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
			pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))
			filter := services.LocationFilter{
				FavoritesOnly: c.Query("favoritesOnly") == "true",
				VideoId:       c.Query("videoId"),
				Page:          page,
				PageSize:      pageSize,
			}
			out, err := state.locations.ListByUser(c.Request.Context(), auth.UserID(c), filter)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		locations.GET("/:id", func(c *gin.Context) {
			out, err := state.locations.GetByUser(c.Request.Context(), auth.UserID(c), c.Param("id"))
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		locations.PATCH("/:id", func(c *gin.Context) {
			var req locationUpdateRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
			update := services.LocationUpdate{
				OriginalName: req.Name,
				Context:      req.Context,
			}
			if req.Category != nil {
				category := model.CategoryFromString(*req.Category)
				update.Category = &category
			}
			out, err := state.locations.UpdateByUser(c.Request.Context(), auth.UserID(c), c.Param("id"), update)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		locations.DELETE("/:id", func(c *gin.Context) {
			if err := state.locations.DeleteByUser(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"deleted": true})
		})

		locations.POST("/:id/favorite", func(c *gin.Context) {
			out, err := state.locations.ToggleFavorite(c.Request.Context(), auth.UserID(c), c.Param("id"))
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		locations.PUT("/:id/favorite", func(c *gin.Context) {
			var req favoriteRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
			out, err := state.locations.SetFavorite(c.Request.Context(), auth.UserID(c), c.Param("id"), req.Favorite)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}
}
