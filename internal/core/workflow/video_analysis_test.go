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

package workflow_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
	"github.com/mapmyvid/map-my-vid-go/internal/core/workflow"
	"github.com/mapmyvid/map-my-vid-go/internal/places"
)

// mp4Bytes is a minimal valid MP4 header so content sniffing passes.
var mp4Bytes = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
	0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'i', 's', 'o', '2',
	'a', 'v', 'c', '1', 'm', 'p', '4', '1',
}

// fakeVideoStore records the lifecycle calls the workflow makes.
type fakeVideoStore struct {
	mu        sync.Mutex
	created   *model.Video
	metadata  []string
	completed bool
	elapsedMs int64
	failedMsg string
	createErr error
}

func (f *fakeVideoStore) Create(_ context.Context, v *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = v
	return nil
}

func (f *fakeVideoStore) UpdateTripMetadata(_ context.Context, id, city, country, summary string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metadata = []string{id, city, country, summary}
	return nil
}

func (f *fakeVideoStore) MarkCompleted(_ context.Context, _ string, processingTimeMs int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = true
	f.elapsedMs = processingTimeMs
	return nil
}

func (f *fakeVideoStore) MarkFailed(_ context.Context, _ string, errorMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failedMsg = errorMessage
	return nil
}

func (f *fakeVideoStore) GetByUser(_ context.Context, _, _ string) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created == nil {
		return nil, model.WrapError(model.ErrNotFound, "fake.get", nil)
	}
	stored := *f.created
	if f.completed {
		stored.Status = model.VideoStatusCompleted
	}
	return &stored, nil
}

// fakeLocationStore tracks per-row state transitions. Safe for the bounded
// fan-out's concurrent writers.
type fakeLocationStore struct {
	mu       sync.Mutex
	rows     map[string]*model.Location
	statuses map[string]model.SearchStatus
}

func newFakeLocationStore() *fakeLocationStore {
	return &fakeLocationStore{
		rows:     make(map[string]*model.Location),
		statuses: make(map[string]model.SearchStatus),
	}
}

func (f *fakeLocationStore) Create(_ context.Context, loc *model.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *loc
	f.rows[loc.Id] = &copied
	f.statuses[loc.Id] = loc.SearchStatus
	return nil
}

func (f *fakeLocationStore) MarkFound(_ context.Context, id string, _ *places.Place) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = model.SearchStatusFound
	return nil
}

func (f *fakeLocationStore) MarkNotFound(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = model.SearchStatusNotFound
	return nil
}

func (f *fakeLocationStore) statusByName(name string) model.SearchStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, row := range f.rows {
		if row.OriginalName == name {
			return f.statuses[id]
		}
	}
	return ""
}

// stubResolver answers by candidate name.
type stubResolver struct {
	mu      sync.Mutex
	answers map[string]*places.Place
	queries []places.Query
}

func (s *stubResolver) Search(_ context.Context, q places.Query) *places.Resolution {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	place := s.answers[q.Name]
	s.mu.Unlock()
	if place == nil {
		return &places.Resolution{Found: false, Reason: "no match"}
	}
	return &places.Resolution{Found: true, Place: place}
}

// fakeExtractor returns a scripted model response.
type fakeExtractor struct {
	response string
	err      error
}

func (f *fakeExtractor) Generate(_ context.Context, _ []*genai.Content) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeUploader optionally fails every archive call.
type fakeUploader struct {
	mu     sync.Mutex
	called bool
	err    error
}

func (f *fakeUploader) Upload(_ context.Context, _ string, _ []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.called = true
	return f.err
}

func validInput() *workflow.UploadInput {
	return &workflow.UploadInput{
		UserId:       "user-1",
		Data:         mp4Bytes,
		OriginalName: "hanoi-trip.mp4",
		MimeType:     "video/mp4",
	}
}

// TestAnalyzeHappyPath runs one candidate through the whole pipeline: the
// extraction parses, the first query variant resolves, and the video ends
// COMPLETED with one FOUND location.
func TestAnalyzeHappyPath(t *testing.T) {
	videos := &fakeVideoStore{}
	locationStore := newFakeLocationStore()
	resolver := &stubResolver{answers: map[string]*places.Place{
		"Pizza 4P's": {
			Name:             "Pizza 4P's Bao Khanh",
			FormattedAddress: "43 Bảo Khánh, Hoàn Kiếm, Hà Nội",
			Latitude:         21.029, Longitude: 105.849,
			PlaceId: "ChIJp4p", Rating: 4.6,
			Types:   []string{"restaurant"},
			MapsUrl: "https://www.google.com/maps/place/?q=place_id:ChIJp4p",
		},
	}}
	extractor := &fakeExtractor{response: `{
		"locations": [{"name": "Pizza 4P's", "type": "restaurant", "context": "dinner spot near the lake"}],
		"city": "Hanoi", "country": "Vietnam", "summary": "A food tour around Hoan Kiem."}`}
	uploader := &fakeUploader{}

	wf := workflow.NewVideoAnalysisWorkflow(videos, uploader, extractor, locationStore, resolver, 2)
	result, err := wf.Analyze(context.Background(), validInput())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.LocationsFound)
	require.Len(t, result.Locations, 1)
	assert.Equal(t, model.SearchStatusFound, result.Locations[0].SearchStatus)
	require.NotNil(t, result.Locations[0].ResolvedName)
	assert.Equal(t, "Pizza 4P's Bao Khanh", *result.Locations[0].ResolvedName)

	assert.True(t, uploader.called)
	assert.True(t, videos.completed)
	assert.Empty(t, videos.failedMsg)
	assert.Equal(t, []string{result.VideoId, "Hanoi", "Vietnam", "A food tour around Hoan Kiem."}, videos.metadata)
	require.NotNil(t, result.Video)
	assert.Equal(t, model.VideoStatusCompleted, result.Video.Status)

	// The resolver saw the extraction's city and country.
	require.Len(t, resolver.queries, 1)
	assert.Equal(t, "Hanoi", resolver.queries[0].City)
	assert.Equal(t, "Vietnam", resolver.queries[0].Country)
}

// TestAnalyzePerLocationIsolation verifies one unresolvable candidate does
// not disturb its siblings or the video's terminal status.
func TestAnalyzePerLocationIsolation(t *testing.T) {
	videos := &fakeVideoStore{}
	locationStore := newFakeLocationStore()
	resolver := &stubResolver{answers: map[string]*places.Place{
		"Dragon Bridge": {Name: "Dragon Bridge", PlaceId: "ChIJdrg"},
	}}
	extractor := &fakeExtractor{response: `{
		"locations": [
			{"name": "Dragon Bridge", "type": "attraction", "context": "fire show"},
			{"name": "Totally Unknown Stall", "type": "restaurant", "context": "street food"}
		],
		"city": "Da Nang", "country": "Vietnam"}`}

	wf := workflow.NewVideoAnalysisWorkflow(videos, &fakeUploader{}, extractor, locationStore, resolver, 2)
	result, err := wf.Analyze(context.Background(), validInput())

	require.NoError(t, err)
	assert.True(t, videos.completed)
	assert.Equal(t, 2, result.LocationsFound)
	assert.Equal(t, model.SearchStatusFound, locationStore.statusByName("Dragon Bridge"))
	assert.Equal(t, model.SearchStatusNotFound, locationStore.statusByName("Totally Unknown Stall"))
}

// TestAnalyzeModelFailureMarksFailed verifies a dead extraction model drives
// the video to FAILED and the caller gets the generic error.
func TestAnalyzeModelFailureMarksFailed(t *testing.T) {
	videos := &fakeVideoStore{}
	extractor := &fakeExtractor{err: errors.New("quota exhausted")}

	wf := workflow.NewVideoAnalysisWorkflow(videos, &fakeUploader{}, extractor, newFakeLocationStore(), &stubResolver{}, 2)
	_, err := wf.Analyze(context.Background(), validInput())

	assert.ErrorIs(t, err, workflow.ErrAnalysisFailed)
	assert.False(t, videos.completed)
	assert.Contains(t, videos.failedMsg, "quota exhausted")
}

// TestAnalyzeUnparseableExtraction verifies prose instead of JSON is a fatal
// pipeline error.
func TestAnalyzeUnparseableExtraction(t *testing.T) {
	videos := &fakeVideoStore{}
	extractor := &fakeExtractor{response: "I watched the video and it was lovely."}

	wf := workflow.NewVideoAnalysisWorkflow(videos, &fakeUploader{}, extractor, newFakeLocationStore(), &stubResolver{}, 2)
	_, err := wf.Analyze(context.Background(), validInput())

	assert.ErrorIs(t, err, workflow.ErrAnalysisFailed)
	assert.NotEmpty(t, videos.failedMsg)
}

// TestAnalyzeRejectsInvalidUploads verifies validation runs before any row
// is written.
func TestAnalyzeRejectsInvalidUploads(t *testing.T) {
	videos := &fakeVideoStore{}
	wf := workflow.NewVideoAnalysisWorkflow(videos, &fakeUploader{}, &fakeExtractor{}, newFakeLocationStore(), &stubResolver{}, 2)

	cases := []struct {
		name  string
		input *workflow.UploadInput
	}{
		{"missing user", &workflow.UploadInput{Data: mp4Bytes, OriginalName: "a.mp4", MimeType: "video/mp4"}},
		{"empty file", &workflow.UploadInput{UserId: "u", OriginalName: "a.mp4", MimeType: "video/mp4"}},
		{"missing filename", &workflow.UploadInput{UserId: "u", Data: mp4Bytes, MimeType: "video/mp4"}},
		{"wrong content type", &workflow.UploadInput{UserId: "u", Data: mp4Bytes, OriginalName: "a.gif", MimeType: "image/gif"}},
		{"not video content", &workflow.UploadInput{UserId: "u", Data: []byte("plain text"), OriginalName: "a.mp4", MimeType: "video/mp4"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := wf.Analyze(context.Background(), tc.input)
			assert.True(t, model.IsKind(err, model.ErrValidation))
			assert.Nil(t, videos.created)
		})
	}

	oversized := &workflow.UploadInput{
		UserId: "u", Data: make([]byte, workflow.MaxVideoBytes+1),
		OriginalName: "big.mp4", MimeType: "video/mp4",
	}
	_, err := wf.Analyze(context.Background(), oversized)
	assert.True(t, model.IsKind(err, model.ErrValidation))
}

// TestAnalyzeSurvivesArchiveFailure verifies a storage outage is tolerated;
// analysis only needs the in-memory bytes.
func TestAnalyzeSurvivesArchiveFailure(t *testing.T) {
	videos := &fakeVideoStore{}
	uploader := &fakeUploader{err: errors.New("bucket unavailable")}
	extractor := &fakeExtractor{response: `{"locations": [], "city": "Hue"}`}

	wf := workflow.NewVideoAnalysisWorkflow(videos, uploader, extractor, newFakeLocationStore(), &stubResolver{}, 2)
	result, err := wf.Analyze(context.Background(), validInput())

	require.NoError(t, err)
	assert.True(t, videos.completed)
	assert.Equal(t, 0, result.LocationsFound)
}

// cancelSensitiveStore refuses writes on a canceled context, the way a real
// database driver does.
type cancelSensitiveStore struct {
	fakeVideoStore
}

func (s *cancelSensitiveStore) MarkCompleted(ctx context.Context, id string, processingTimeMs int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fakeVideoStore.MarkCompleted(ctx, id, processingTimeMs)
}

func (s *cancelSensitiveStore) MarkFailed(ctx context.Context, id, errorMessage string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fakeVideoStore.MarkFailed(ctx, id, errorMessage)
}

// cancelingExtractor cancels the request context mid-analysis, simulating the
// client disconnecting while the model call is in flight.
type cancelingExtractor struct {
	cancel   context.CancelFunc
	response string
	err      error
}

func (f *cancelingExtractor) Generate(_ context.Context, _ []*genai.Content) (string, error) {
	f.cancel()
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// TestAnalyzeSurvivesClientDisconnect verifies a disconnect mid-analysis does
// not strand the row: the pipeline keeps running and the terminal status
// write still lands.
func TestAnalyzeSurvivesClientDisconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	videos := &cancelSensitiveStore{}
	extractor := &cancelingExtractor{
		cancel:   cancel,
		response: `{"locations": [{"name": "Dragon Bridge", "type": "attraction", "context": "fire show"}], "city": "Da Nang"}`,
	}
	resolver := &stubResolver{answers: map[string]*places.Place{
		"Dragon Bridge": {Name: "Dragon Bridge", PlaceId: "ChIJdrg"},
	}}

	wf := workflow.NewVideoAnalysisWorkflow(videos, &fakeUploader{}, extractor, newFakeLocationStore(), resolver, 2)
	result, err := wf.Analyze(ctx, validInput())

	require.NoError(t, err)
	assert.True(t, videos.completed)
	assert.Equal(t, 1, result.LocationsFound)
}

// TestAnalyzeDisconnectStillMarksFailed verifies a disconnect coinciding with
// a pipeline failure still lands the row on FAILED instead of leaving it in
// PROCESSING.
func TestAnalyzeDisconnectStillMarksFailed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	videos := &cancelSensitiveStore{}
	extractor := &cancelingExtractor{cancel: cancel, err: errors.New("connection reset")}

	wf := workflow.NewVideoAnalysisWorkflow(videos, &fakeUploader{}, extractor, newFakeLocationStore(), &stubResolver{}, 2)
	_, err := wf.Analyze(ctx, validInput())

	assert.ErrorIs(t, err, workflow.ErrAnalysisFailed)
	assert.False(t, videos.completed)
	assert.Contains(t, videos.failedMsg, "connection reset")
}
