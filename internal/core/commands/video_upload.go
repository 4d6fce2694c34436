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

package commands

import (
	"log/slog"

	"github.com/mapmyvid/map-my-vid-go/internal/cloud"
	"github.com/mapmyvid/map-my-vid-go/internal/core/cor"
)

// VideoUpload archives the raw video bytes to object storage. Archival is
// best effort: a storage failure is logged and counted but never fails the
// chain, since analysis only needs the in-memory bytes.
type VideoUpload struct {
	cor.BaseCommand
	uploader Uploader
}

func NewVideoUpload(name string, uploader Uploader) *VideoUpload {
	out := &VideoUpload{uploader: uploader}
	out.BaseCommand = *cor.NewBaseCommand(name)
	out.InputParamName = KeyRequest
	return out
}

func (v *VideoUpload) Execute(context cor.Context) {
	request := context.Get(v.GetInputParam()).(*AnalysisRequest)
	objectName := cloud.VideoObjectName(request.UserId, request.Filename)
	if err := v.uploader.Upload(context.GetContext(), objectName, request.Data, request.MimeType); err != nil {
		v.GetErrorCounter().Add(context.GetContext(), 1)
		slog.WarnContext(context.GetContext(), "video archival failed, continuing analysis",
			"video_id", request.VideoId, "object", objectName, "error", err)
		return
	}
	v.GetSuccessCounter().Add(context.GetContext(), 1)
}
