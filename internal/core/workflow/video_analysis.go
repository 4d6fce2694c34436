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

// Package workflow orchestrates the video analysis pipeline: it validates an
// upload, owns the video row's lifecycle, and runs the command chain that
// does the actual work.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/mapmyvid/map-my-vid-go/internal/core/commands"
	"github.com/mapmyvid/map-my-vid-go/internal/core/cor"
	"github.com/mapmyvid/map-my-vid-go/internal/core/model"
)

// MaxVideoBytes is the upload size cap.
const MaxVideoBytes = 100 << 20

// ErrAnalysisFailed is the generic failure returned to callers. The root
// cause is persisted on the video row and logged, never surfaced raw.
var ErrAnalysisFailed = errors.New("video analysis failed")

// VideoStore is the video row lifecycle surface the workflow drives.
type VideoStore interface {
	Create(ctx context.Context, v *model.Video) error
	UpdateTripMetadata(ctx context.Context, id, city, country, summary string) error
	MarkCompleted(ctx context.Context, id string, processingTimeMs int64) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
	GetByUser(ctx context.Context, userID, id string) (*model.Video, error)
}

// UploadInput is a raw upload before validation.
type UploadInput struct {
	UserId       string
	Data         []byte
	OriginalName string
	MimeType     string
}

// VideoAnalysisWorkflow runs one upload end to end: archive the bytes,
// extract candidate locations with the model, persist trip metadata, resolve
// each candidate against the place search, and report the outcome. The video
// row is created in PROCESSING before the chain starts and always reaches a
// terminal status.
type VideoAnalysisWorkflow struct {
	cor.BaseCommand
	videos VideoStore
	chain  cor.Chain
}

// NewVideoAnalysisWorkflow assembles the pipeline. The worker count bounds
// the place resolution fan-out.
func NewVideoAnalysisWorkflow(
	videos VideoStore,
	uploader commands.Uploader,
	extractor commands.Generator,
	locations commands.LocationStore,
	resolver commands.PlaceResolver,
	workers int) *VideoAnalysisWorkflow {

	out := &VideoAnalysisWorkflow{
		BaseCommand: *cor.NewBaseCommand("video-analysis-pipeline"),
		videos:      videos,
	}

	chain := cor.NewBaseChain(out.GetName())
	chain.AddCommand(commands.NewVideoUpload("archive-video", uploader))
	chain.AddCommand(commands.NewLocationExtractor("extract-locations", extractor))
	chain.AddCommand(commands.NewExtractionParser("parse-extraction"))
	chain.AddCommand(commands.NewTripMetadata("persist-trip-metadata", videos))
	chain.AddCommand(commands.NewLocationResolver("resolve-locations", locations, resolver, workers))
	chain.AddCommand(commands.NewAnalysisFinalizer("assemble-report"))
	out.chain = chain
	return out
}

func (w *VideoAnalysisWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// Analyze validates and processes one upload. Validation failures return
// before any row is written; once the PROCESSING row exists the video always
// ends COMPLETED or FAILED.
func (w *VideoAnalysisWorkflow) Analyze(ctx context.Context, in *UploadInput) (*model.AnalysisResult, error) {
	if err := validateUpload(in); err != nil {
		return nil, err
	}

	// Once validation passes the video row must reach a terminal status even
	// if the caller disconnects, so everything below runs detached from
	// request cancellation.
	ctx = context.WithoutCancel(ctx)

	request := &commands.AnalysisRequest{
		VideoId:      uuid.New().String(),
		UserId:       in.UserId,
		Data:         in.Data,
		Filename:     storedFilename(in.OriginalName),
		OriginalName: in.OriginalName,
		MimeType:     in.MimeType,
		Size:         int64(len(in.Data)),
	}

	video := &model.Video{
		Id:           request.VideoId,
		UserId:       request.UserId,
		Filename:     request.Filename,
		OriginalName: request.OriginalName,
		FileSize:     request.Size,
		MimeType:     request.MimeType,
		Status:       model.VideoStatusProcessing,
	}
	if err := w.videos.Create(ctx, video); err != nil {
		return nil, err
	}

	start := time.Now()
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(commands.KeyRequest, request)

	w.Execute(chainCtx)

	if chainCtx.HasErrors() {
		w.GetErrorCounter().Add(ctx, 1)
		if err := w.videos.MarkFailed(ctx, request.VideoId, failureMessage(chainCtx)); err != nil {
			return nil, err
		}
		return nil, ErrAnalysisFailed
	}

	elapsed := time.Since(start).Milliseconds()
	if err := w.videos.MarkCompleted(ctx, request.VideoId, elapsed); err != nil {
		return nil, err
	}

	result := chainCtx.Get(commands.KeyResult).(*model.AnalysisResult)
	result.ProcessingTimeMs = elapsed
	if stored, err := w.videos.GetByUser(ctx, request.UserId, request.VideoId); err == nil {
		result.Video = stored
	}
	w.GetSuccessCounter().Add(ctx, 1)
	return result, nil
}

func validateUpload(in *UploadInput) error {
	if in == nil || in.UserId == "" {
		return model.WrapError(model.ErrValidation, "workflow.analyze", errors.New("user id is required"))
	}
	if len(in.Data) == 0 {
		return model.WrapError(model.ErrValidation, "workflow.analyze", errors.New("video file is required"))
	}
	if len(in.Data) > MaxVideoBytes {
		return model.WrapError(model.ErrValidation, "workflow.analyze", errors.New("video exceeds 100MB limit"))
	}
	if in.OriginalName == "" {
		return model.WrapError(model.ErrValidation, "workflow.analyze", errors.New("filename is required"))
	}
	if !strings.HasPrefix(in.MimeType, "video/") {
		return model.WrapError(model.ErrValidation, "workflow.analyze", fmt.Errorf("unsupported content type %q", in.MimeType))
	}
	if !filetype.IsVideo(in.Data) {
		return model.WrapError(model.ErrValidation, "workflow.analyze", errors.New("file content is not a video"))
	}
	return nil
}

// storedFilename keeps the client extension but guarantees uniqueness.
func storedFilename(originalName string) string {
	ext := ""
	if idx := strings.LastIndexByte(originalName, '.'); idx >= 0 {
		ext = originalName[idx:]
	}
	return uuid.New().String() + ext
}

// failureMessage flattens the chain errors into one persisted message.
func failureMessage(chainCtx cor.Context) string {
	parts := make([]string, 0, len(chainCtx.GetErrors()))
	for name, err := range chainCtx.GetErrors() {
		parts = append(parts, fmt.Sprintf("%s: %v", name, err))
	}
	return strings.Join(parts, "; ")
}
