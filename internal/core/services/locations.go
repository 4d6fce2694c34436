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
	"fmt"
	"strings"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/places"
)

// Pagination bounds for location listings.
const (
	DefaultLocationPageSize = 20
	MaxLocationPageSize     = 100
)

// LocationFilter narrows ListByUser results.
type LocationFilter struct {
	FavoritesOnly bool
	VideoId       string
	Page          int
	PageSize      int
}

// LocationUpdate carries the fields a user may edit on a saved location.
// Nil fields are left unchanged.
type LocationUpdate struct {
	OriginalName *string
	Context      *string
	Category     *model.LocationCategory
}

// LocationService persists Location rows. Locations have no user column of
// their own; every user-facing operation joins through the owning video, so
// a location reachable by the wrong user simply does not exist.
type LocationService struct {
	db *sql.DB
}

// NewLocationService creates a LocationService on the given database handle.
func NewLocationService(db *sql.DB) *LocationService {
	return &LocationService{db: db}
}

// Create inserts a location row, typically in PENDING state before the
// resolver runs.
func (s *LocationService) Create(ctx context.Context, loc *model.Location) error {
	if loc.VideoId == "" || loc.OriginalName == "" {
		return model.WrapError(model.ErrValidation, "locations.create", errors.New("video id and name are required"))
	}
	placeTypes, err := marshalPlaceTypes(loc.PlaceTypes)
	if err != nil {
		return model.WrapError(model.ErrValidation, "locations.create", err)
	}
	_, err = s.db.ExecContext(ctx, stmtInsertLocation,
		loc.Id, loc.VideoId, loc.OriginalName, loc.Category, loc.Context,
		nullStringPtr(loc.AiAddress), placeTypes, loc.SearchStatus)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "locations.create", err)
	}
	return nil
}

// MarkFound writes the resolved place onto the row and flips it to FOUND.
func (s *LocationService) MarkFound(ctx context.Context, id string, p *places.Place) error {
	placeTypes, err := marshalPlaceTypes(p.Types)
	if err != nil {
		return model.WrapError(model.ErrValidation, "locations.mark_found", err)
	}
	_, err = s.db.ExecContext(ctx, stmtMarkLocationFound,
		id, p.Name, p.FormattedAddress, p.Latitude, p.Longitude,
		p.PlaceId, p.Rating, p.MapsUrl, placeTypes)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "locations.mark_found", err)
	}
	return nil
}

// MarkNotFound flips the row to NOT_FOUND after resolution exhausted every
// query variant (or failed outright).
func (s *LocationService) MarkNotFound(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, stmtMarkLocationNotFound, id)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "locations.mark_not_found", err)
	}
	return nil
}

// ListByUser returns one page of the user's locations, newest first, with
// optional favorites and video filters.
func (s *LocationService) ListByUser(ctx context.Context, userID string, filter LocationFilter) (*model.Page[*model.Location], error) {
	if userID == "" {
		return nil, model.WrapError(model.ErrValidation, "locations.list", errors.New("user id is required"))
	}
	page, pageSize, err := normalizePage(filter.Page, filter.PageSize, DefaultLocationPageSize, MaxLocationPageSize)
	if err != nil {
		return nil, model.WrapError(model.ErrValidation, "locations.list", err)
	}

	where := []string{"v.user_id = $1"}
	args := []any{userID}
	if filter.FavoritesOnly {
		where = append(where, "l.is_favorite = TRUE")
	}
	if filter.VideoId != "" {
		args = append(args, filter.VideoId)
		where = append(where, fmt.Sprintf("l.video_id = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM locations l JOIN videos v ON v.id = l.video_id WHERE %s", whereClause)
	var total int64
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.list", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s FROM locations l JOIN videos v ON v.id = l.video_id WHERE %s ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d",
		locationColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.list", err)
	}
	defer rows.Close()

	locations := make([]*model.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, model.WrapError(model.ErrExternalService, "locations.list", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.list", err)
	}

	return &model.Page[*model.Location]{Items: locations, Total: total, PageNumber: page, PageSize: pageSize}, nil
}

// GetByUser fetches one location through the ownership join.
func (s *LocationService) GetByUser(ctx context.Context, userID, id string) (*model.Location, error) {
	if userID == "" || id == "" {
		return nil, model.WrapError(model.ErrValidation, "locations.get", errors.New("user id and location id are required"))
	}
	row := s.db.QueryRowContext(ctx, stmtSelectLocationByUser, id, userID)
	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.WrapError(model.ErrNotFound, "locations.get", nil)
	}
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.get", err)
	}
	return loc, nil
}

// UpdateByUser applies a user edit to the mutable fields and returns the
// updated row.
func (s *LocationService) UpdateByUser(ctx context.Context, userID, id string, update LocationUpdate) (*model.Location, error) {
	existing, err := s.GetByUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	name := existing.OriginalName
	if update.OriginalName != nil {
		name = *update.OriginalName
	}
	contextText := existing.Context
	if update.Context != nil {
		contextText = *update.Context
	}
	category := existing.Category
	if update.Category != nil {
		category = *update.Category
	}
	if name == "" {
		return nil, model.WrapError(model.ErrValidation, "locations.update", errors.New("name cannot be empty"))
	}

	if _, err := s.db.ExecContext(ctx, stmtUpdateLocationByUser, id, userID, name, contextText, category); err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.update", err)
	}
	return s.GetByUser(ctx, userID, id)
}

// DeleteByUser removes a location owned by the user.
func (s *LocationService) DeleteByUser(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return model.WrapError(model.ErrValidation, "locations.delete", errors.New("user id and location id are required"))
	}
	res, err := s.db.ExecContext(ctx, stmtDeleteLocationByUser, id, userID)
	if err != nil {
		return model.WrapError(model.ErrExternalService, "locations.delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.WrapError(model.ErrExternalService, "locations.delete", err)
	}
	if affected == 0 {
		return model.WrapError(model.ErrNotFound, "locations.delete", nil)
	}
	return nil
}

// ToggleFavorite inverts the favorite flag and returns the updated row.
func (s *LocationService) ToggleFavorite(ctx context.Context, userID, id string) (*model.Location, error) {
	existing, err := s.GetByUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.SetFavorite(ctx, userID, id, !existing.IsFavorite)
}

// SetFavorite writes an explicit favorite value and returns the updated row.
func (s *LocationService) SetFavorite(ctx context.Context, userID, id string, favorite bool) (*model.Location, error) {
	if userID == "" || id == "" {
		return nil, model.WrapError(model.ErrValidation, "locations.favorite", errors.New("user id and location id are required"))
	}
	res, err := s.db.ExecContext(ctx, stmtSetLocationFavorite, id, userID, favorite)
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.favorite", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.favorite", err)
	}
	if affected == 0 {
		return nil, model.WrapError(model.ErrNotFound, "locations.favorite", nil)
	}
	return s.GetByUser(ctx, userID, id)
}

// FavoritesByUser loads every favorited location for route planning.
func (s *LocationService) FavoritesByUser(ctx context.Context, userID string) ([]*model.Location, error) {
	if userID == "" {
		return nil, model.WrapError(model.ErrValidation, "locations.favorites", errors.New("user id is required"))
	}
	rows, err := s.db.QueryContext(ctx, stmtSelectFavoritesByUser, userID)
	if err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.favorites", err)
	}
	defer rows.Close()

	favorites := make([]*model.Location, 0)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, model.WrapError(model.ErrExternalService, "locations.favorites", err)
		}
		favorites = append(favorites, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, model.WrapError(model.ErrExternalService, "locations.favorites", err)
	}
	return favorites, nil
}

// nullStringPtr maps a nil pointer to NULL.
func nullStringPtr(in *string) sql.NullString {
	if in == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *in, Valid: true}
}
