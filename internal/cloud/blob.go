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

package cloud

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
)

// BlobStore wraps the Google Cloud Storage client for the single bucket that
// holds raw video uploads. Objects are keyed per user so the original bytes
// can be replayed or streamed back later.
type BlobStore struct {
	client *storage.Client
	bucket string
}

// NewBlobStore creates a BlobStore backed by the given client and bucket.
func NewBlobStore(client *storage.Client, bucket string) *BlobStore {
	return &BlobStore{client: client, bucket: bucket}
}

// VideoObjectName returns the canonical object key for an uploaded video.
func VideoObjectName(userID string, filename string) string {
	return fmt.Sprintf("videos/%s/%s", userID, filename)
}

// Upload writes data to the bucket under objectName. The write is atomic;
// either the full object lands or the Close error reports the failure.
func (b *BlobStore) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	w := b.client.Bucket(b.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// SignedDownloadURL returns a V4 signed URL granting time-limited read
// access to an archived video object. The client streams directly from
// Cloud Storage instead of proxying bytes through this service.
func (b *BlobStore) SignedDownloadURL(objectName string, ttl time.Duration) (string, error) {
	return b.client.Bucket(b.bucket).SignedURL(objectName, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
	})
}
