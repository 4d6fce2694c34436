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
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mapmyvid/map-my-vid-go/internal/auth"
	"github.com/mapmyvid/map-my-vid-go/internal/cloud"
	"github.com/mapmyvid/map-my-vid-go/internal/core/workflow"
)

// VideoRouter sets up the video analysis and management endpoints.
//
// This function defines the following endpoints:
//   - POST /video-analyzer/analyze: Uploads a video and runs the full
//     extraction pipeline, returning the analysis report.
//   - GET /video-analyzer/videos: Lists the caller's videos, paginated.
//   - GET /video-analyzer/videos/:id: Retrieves one video with its locations.
//   - DELETE /video-analyzer/videos/:id: Deletes a video and its locations.
//   - GET /video-analyzer/videos/:id/stream: Returns a time-limited signed
//     URL for streaming the archived upload.
//   - GET /video-analyzer/statistics: Returns the caller's usage statistics.
func VideoRouter(r *gin.RouterGroup) {
	analyzer := r.Group("/video-analyzer")
	{
		analyzer.POST("/analyze", func(c *gin.Context) {
			file, err := c.FormFile("video")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "video file is required"})
				return
			}
			if file.Size > workflow.MaxVideoBytes {
				c.JSON(http.StatusBadRequest, gin.H{"error": "video exceeds 100MB limit"})
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

			result, err := state.analyzer.Analyze(c.Request.Context(), &workflow.UploadInput{
				UserId:       auth.UserID(c),
				Data:         data,
				OriginalName: file.Filename,
				MimeType:     file.Header.Get("Content-Type"),
			})
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, result)
		})

		analyzer.GET("/videos", func(c *gin.Context) {
			page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
			pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "0"))
			out, err := state.videos.ListByUser(c.Request.Context(), auth.UserID(c), page, pageSize)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		analyzer.GET("/videos/:id", func(c *gin.Context) {
			out, err := state.videos.GetByUser(c.Request.Context(), auth.UserID(c), c.Param("id"))
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		analyzer.DELETE("/videos/:id", func(c *gin.Context) {
			if err := state.videos.DeleteByUser(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"deleted": true})
		})

		analyzer.GET("/videos/:id/stream", func(c *gin.Context) {
			userID := auth.UserID(c)
			video, err := state.videos.GetByUser(c.Request.Context(), userID, c.Param("id"))
			if err != nil {
				writeError(c, err)
				return
			}
			signedURL, err := state.cloud.Blobs.SignedDownloadURL(
				cloud.VideoObjectName(userID, video.Filename), 15*time.Minute)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"url": signedURL})
		})

		analyzer.GET("/statistics", func(c *gin.Context) {
			out, err := state.videos.Statistics(c.Request.Context(), auth.UserID(c))
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}
}
