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

	"github.com/gin-gonic/gin"

	"github.com/mapmyvid/map-my-vid-go/internal/auth"
)

// InsuranceRouter sets up the travel insurance catalog endpoints.
func InsuranceRouter(r *gin.RouterGroup) {
	insurance := r.Group("/insurance")
	{
		insurance.GET("/packages", func(c *gin.Context) {
			country := c.DefaultQuery("country", "default")
			out, err := state.insurance.Recommendations(country)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"country":  country,
				"packages": out,
			})
		})

		insurance.GET("/countries", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"countries": state.insurance.Countries()})
		})

		insurance.GET("/recommendations/:videoId", func(c *gin.Context) {
			out, err := state.insurance.RecommendationsForVideo(c.Request.Context(),
				auth.UserID(c), c.Param("videoId"))
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"packages": out})
		})
	}
}
