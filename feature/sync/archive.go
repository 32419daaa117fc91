package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"catalog-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes a JSON snapshot of each successfully pushed payload to
// object storage, giving the catalog a point-in-time history independent of
// the remote endpoint.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewArchiver creates an archiver writing to bucket.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, logger: logger}
}

// Archive uploads the payload under snapshots/catalog-<timestamp>.json,
// creating the bucket on first use.
func (a *Archiver) Archive(ctx context.Context, payload Payload, ts time.Time) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	name := fmt.Sprintf("snapshots/catalog-%s.json", ts.UTC().Format("20060102T150405Z"))
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}

	a.logger.Info("snapshot archived", zap.String("object", name), zap.Int("bytes", len(data)))
	return nil
}

// Prune deletes the oldest snapshots beyond keep. Snapshot names embed their
// timestamp, so lexical order is chronological order.
func (a *Archiver) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}

	var names []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: "snapshots/"}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}
	if len(names) <= keep {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := a.client.RemoveObject(ctx, a.bucket, name, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove snapshot %s: %w", name, err)
		}
		a.logger.Debug("snapshot pruned", zap.String("object", name))
	}
	return nil
}
