package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/RubachokBoss/driving-test-service/internal/config"
	"github.com/RubachokBoss/driving-test-service/internal/models"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// MinIORepository stores the collection as a single JSON object.
type MinIORepository struct {
	client    *minio.Client
	bucket    string
	region    string
	objectKey string
	logger    zerolog.Logger

	ensureMu sync.Mutex
	ensured  bool
}

func NewMinIORepository(cfg config.MinIOConfig, logger zerolog.Logger) (*MinIORepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	repo := &MinIORepository{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		objectKey: cfg.ObjectKey,
		logger:    logger,
	}

	// Do not fail startup if MinIO is still coming up; every call retries.
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := repo.ensureStore(ctx); err != nil {
		logger.Error().Err(err).
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Msg("MinIO not ready during startup")
	} else {
		logger.Info().
			Str("endpoint", cfg.Endpoint).
			Str("bucket", cfg.Bucket).
			Str("object", cfg.ObjectKey).
			Msg("Connected to MinIO")
	}

	return repo, nil
}

// ensureStore creates the bucket and an empty document if either is missing.
func (r *MinIORepository) ensureStore(ctx context.Context) error {
	r.ensureMu.Lock()
	defer r.ensureMu.Unlock()
	if r.ensured {
		return nil
	}

	backoff := 500 * time.Millisecond
	var lastErr error
	for {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return storageError("minio not ready", lastErr)
			}
			return storageError("minio not ready", err)
		}

		if lastErr = r.bootstrap(ctx); lastErr == nil {
			r.ensured = true
			return nil
		}

		select {
		case <-ctx.Done():
		case <-time.After(backoff):
		}
	}
}

func (r *MinIORepository) bootstrap(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return err
	}

	if !exists {
		if err := r.client.MakeBucket(ctx, r.bucket, minio.MakeBucketOptions{Region: r.region}); err != nil {
			return err
		}
		r.logger.Info().Str("bucket", r.bucket).Msg("Created new bucket")
	}

	_, err = r.client.StatObject(ctx, r.bucket, r.objectKey, minio.StatObjectOptions{})
	if err == nil {
		return nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return err
	}

	return r.put(ctx, nil)
}

func (r *MinIORepository) LoadAll(ctx context.Context) ([]models.TestResult, error) {
	if err := r.ensureStore(ctx); err != nil {
		return nil, err
	}

	object, err := r.client.GetObject(ctx, r.bucket, r.objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, storageError("failed to get results object", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, storageError("failed to read results object", err)
	}

	results, err := decodeResults(data)
	if err != nil {
		return nil, storageError("failed to decode results object", err)
	}

	return results, nil
}

func (r *MinIORepository) SaveAll(ctx context.Context, results []models.TestResult) error {
	if err := r.ensureStore(ctx); err != nil {
		return err
	}

	if err := r.put(ctx, results); err != nil {
		return storageError("failed to upload results object", err)
	}

	return nil
}

func (r *MinIORepository) put(ctx context.Context, results []models.TestResult) error {
	data, err := encodeResults(results)
	if err != nil {
		return err
	}

	info, err := r.client.PutObject(ctx, r.bucket, r.objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return err
	}

	r.logger.Debug().
		Str("bucket", r.bucket).
		Str("object", r.objectKey).
		Str("etag", info.ETag).
		Int("count", len(results)).
		Msg("Results object uploaded")

	return nil
}

func (r *MinIORepository) Ping(ctx context.Context) error {
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return storageError("minio unavailable", err)
	}
	if !exists {
		return storageError("minio unavailable", fmt.Errorf("bucket %s does not exist", r.bucket))
	}
	return nil
}

func (r *MinIORepository) Close() error {
	return nil
}
