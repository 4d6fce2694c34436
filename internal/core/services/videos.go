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
	"database/sql"
	"errors"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// Pagination bounds for video listings.
const (
	DefaultVideoPageSize = 20
	MaxVideoPageSize     = 50
)

// VideoService persists Video rows and answers the user-facing read
// operations. Every read and delete is scoped by user id; a row owned by
// someone else behaves exactly like a missing row.
type VideoService struct {
	db *sql.DB
}

// NewVideoService creates a VideoService on the given database handle.
func NewVideoService(db *sql.DB) *VideoService {
	return &VideoService{db: db}
}

// Create inserts a new video row with the status carried on v.
func (s *VideoService) Create(ctx context.Context, v *model.Video) error {
	_, err := s.db.ExecContext(ctx, stmtInsertVideo,
		v.Id, v.UserId, v.Filename, v.OriginalName, v.FileSize, v.MimeType, v.Status)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "videos.create", err)
	}
	return nil
}

// UpdateTripMetadata writes the extraction's trip-level fields onto the row.
// Empty strings are stored as NULL.
func (s *VideoService) UpdateTripMetadata(ctx context.Context, id, city, country, summary string) error {
	_, err := s.db.ExecContext(ctx, stmtUpdateVideoTripMetadata,
		id, nullString(city), nullString(country), nullString(summary))
	if err != nil {
		return model.WrapError(model.ErrExternalService, "videos.update_metadata", err)
	}
	return nil
}

// MarkCompleted transitions the video to COMPLETED with its elapsed time.
func (s *VideoService) MarkCompleted(ctx context.Context, id string, processingTimeMs int64) error {
	_, err := s.db.ExecContext(ctx, stmtMarkVideoCompleted, id, processingTimeMs)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "videos.mark_completed", err)
	}
	return nil
}

// MarkFailed transitions the video to FAILED, recording the root cause for
// operators. The message is never surfaced to the end user.
func (s *VideoService) MarkFailed(ctx context.Context, id, errorMessage string) error {
	_, err := s.db.ExecContext(ctx, stmtMarkVideoFailed, id, errorMessage)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "videos.mark_failed", err)
	}
	return nil
}

// GetByUser fetches one video with its locations. A missing row and a row
// owned by a different user are indistinguishable to the caller.
func (s *VideoService) GetByUser(ctx context.Context, userID, id string) (*model.Video, error) {
	if userID == "" || id == "" {
		return nil, model.WrapError(model.ErrValidation, "videos.get", errors.New("user id and video id are required"))
	}
	row := s.db.QueryRowContext(ctx, stmtSelectVideoByUser, id, userID)
	v, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.WrapError(model.ErrNotFound, "videos.get", nil)
	}
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "videos.get", err)
	}
	if err := s.attachLocations(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// ListByUser returns one page of the user's videos, newest first, each with
// its locations attached.
func (s *VideoService) ListByUser(ctx context.Context, userID string, page, pageSize int) (*model.Page[*model.Video], error) {
	if userID == "" {
		return nil, model.WrapError(model.ErrValidation, "videos.list", errors.New("user id is required"))
	}
	page, pageSize, err := normalizePage(page, pageSize, DefaultVideoPageSize, MaxVideoPageSize)
	if err != nil {
		return nil, model.WrapError(model.ErrValidation, "videos.list", err)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, stmtCountVideosByUser, userID).Scan(&total); err != nil {
		return nil, model.WrapError(model.ErrExternalService, "videos.list", err)
	}

	rows, err := s.db.QueryContext(ctx, stmtListVideosByUser, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "videos.list", err)
	}
	defer rows.Close()

	videos := make([]*model.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, model.WrapError(model.ErrExternalService, "videos.list", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapError(model.ErrExternalService, "videos.list", err)
	}

	for _, v := range videos {
		if err := s.attachLocations(ctx, v); err != nil {
			return nil, err
		}
	}

	return &model.Page[*model.Video]{Items: videos, Total: total, PageNumber: page, PageSize: pageSize}, nil
}

// DeleteByUser removes a video and, through the schema's cascade, its
// locations. Deleting another user's video reports not found.
func (s *VideoService) DeleteByUser(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return model.WrapError(model.ErrValidation, "videos.delete", errors.New("user id and video id are required"))
	}
	res, err := s.db.ExecContext(ctx, stmtDeleteVideoByUser, id, userID)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "videos.delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.WrapError(model.ErrExternalService, "videos.delete", err)
	}
	if affected == 0 {
		return model.WrapError(model.ErrNotFound, "videos.delete", nil)
	}
	return nil
}

// Statistics aggregates the user's totals and mean processing time.
func (s *VideoService) Statistics(ctx context.Context, userID string) (*model.Statistics, error) {
	if userID == "" {
		return nil, model.WrapError(model.ErrValidation, "videos.statistics", errors.New("user id is required"))
	}
	stats := &model.Statistics{}
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, stmtVideoStatistics, userID).
		Scan(&stats.TotalVideos, &stats.TotalLocations, &avg)
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "videos.statistics", err)
	}
	if avg.Valid {
		stats.AvgProcessingTimeMs = &avg.Float64
	}
	return stats, nil
}

func (s *VideoService) attachLocations(ctx context.Context, v *model.Video) error {
	rows, err := s.db.QueryContext(ctx, stmtSelectLocationsByVideo, v.Id)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "videos.locations", err)
	}
	defer rows.Close()
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return model.WrapError(model.ErrExternalService, "videos.locations", err)
		}
		v.Locations = append(v.Locations, loc)
	}
	if err := rows.Err(); err != nil {
		return model.WrapError(model.ErrExternalService, "videos.locations", err)
	}
	return nil
}
