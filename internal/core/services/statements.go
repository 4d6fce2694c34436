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

// Package services contains the persistence and domain services built on
// PostgreSQL plus the AI-backed route planner. This file collects every SQL
// statement in one place so the schema contract is visible at a glance.
// Location reads join through videos: the videos table owns the user id, so
// ownership checks are expressed in the join, never in application code
// after the fact.
package services

const (
	stmtInsertVideo = `
INSERT INTO videos (id, user_id, filename, original_name, file_size, mime_type, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`

	stmtUpdateVideoTripMetadata = `
UPDATE videos SET city = $2, country = $3, summary = $4, updated_at = now() WHERE id = $1`

	stmtMarkVideoCompleted = `
UPDATE videos SET status = 'COMPLETED', processing_time_ms = $2, updated_at = now() WHERE id = $1`

	stmtMarkVideoFailed = `
UPDATE videos SET status = 'FAILED', error_message = $2, updated_at = now() WHERE id = $1`

	videoColumns = `id, user_id, filename, original_name, file_size, mime_type, duration_seconds,
	city, country, summary, status, error_message, processing_time_ms, created_at, updated_at`

	stmtSelectVideoByUser = `
SELECT ` + videoColumns + ` FROM videos WHERE id = $1 AND user_id = $2`

	stmtListVideosByUser = `
SELECT ` + videoColumns + ` FROM videos WHERE user_id = $1
ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	stmtCountVideosByUser = `
SELECT COUNT(*) FROM videos WHERE user_id = $1`

	stmtDeleteVideoByUser = `
DELETE FROM videos WHERE id = $1 AND user_id = $2`

	stmtVideoStatistics = `
SELECT
	(SELECT COUNT(*) FROM videos WHERE user_id = $1),
	(SELECT COUNT(*) FROM locations l JOIN videos v ON v.id = l.video_id WHERE v.user_id = $1),
	(SELECT AVG(processing_time_ms) FROM videos WHERE user_id = $1 AND processing_time_ms IS NOT NULL)`

	locationColumns = `l.id, l.video_id, l.original_name, l.category, l.context, l.ai_address,
	l.resolved_name, l.formatted_address, l.latitude, l.longitude, l.place_id, l.rating,
	l.maps_url, l.place_types, l.search_status, l.is_favorite, l.created_at, l.updated_at`

	stmtInsertLocation = `
INSERT INTO locations (id, video_id, original_name, category, context, ai_address, place_types, search_status, is_favorite, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, now(), now())`

	stmtMarkLocationFound = `
UPDATE locations SET resolved_name = $2, formatted_address = $3, latitude = $4, longitude = $5,
	place_id = $6, rating = $7, maps_url = $8, place_types = $9, search_status = 'FOUND',
	updated_at = now()
WHERE id = $1`

	stmtMarkLocationNotFound = `
UPDATE locations SET search_status = 'NOT_FOUND', updated_at = now() WHERE id = $1`

	stmtSelectLocationsByVideo = `
SELECT ` + locationColumns + ` FROM locations l WHERE l.video_id = $1 ORDER BY l.created_at`

	stmtSelectLocationByUser = `
SELECT ` + locationColumns + ` FROM locations l
JOIN videos v ON v.id = l.video_id
WHERE l.id = $1 AND v.user_id = $2`

	stmtUpdateLocationByUser = `
UPDATE locations SET original_name = $3, context = $4, category = $5, updated_at = now()
WHERE id = $1 AND id IN (
	SELECT l.id FROM locations l JOIN videos v ON v.id = l.video_id WHERE l.id = $1 AND v.user_id = $2)`

	stmtDeleteLocationByUser = `
DELETE FROM locations WHERE id = $1 AND id IN (
	SELECT l.id FROM locations l JOIN videos v ON v.id = l.video_id WHERE l.id = $1 AND v.user_id = $2)`

	stmtSetLocationFavorite = `
UPDATE locations SET is_favorite = $3, updated_at = now()
WHERE id = $1 AND id IN (
	SELECT l.id FROM locations l JOIN videos v ON v.id = l.video_id WHERE l.id = $1 AND v.user_id = $2)`

	stmtSelectFavoritesByUser = `
SELECT ` + locationColumns + ` FROM locations l
JOIN videos v ON v.id = l.video_id
WHERE v.user_id = $1 AND l.is_favorite = TRUE
ORDER BY l.created_at DESC`
)
