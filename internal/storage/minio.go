package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrImageNotFound - объект изображения отсутствует в хранилище
var ErrImageNotFound = errors.New("image not found")

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// IsAllowedContentType - принимаются только JPEG, PNG, GIF и WEBP
func IsAllowedContentType(contentType string) bool {
	_, ok := allowedContentTypes[normalizeContentType(contentType)]
	return ok
}

func normalizeContentType(contentType string) string {
	ct, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(ct))
}

// Image - открытый объект изображения, Body закрывает вызывающий
type Image struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ImageStore хранит изображения событий в MinIO
type ImageStore struct {
	client *minio.Client
	bucket string

	mu           sync.Mutex
	bucketExists bool
}

func NewImageStore(opts Options) (*ImageStore, error) {
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: could not create minio client: %w", err)
	}
	return &ImageStore{client: cli, bucket: opts.Bucket}, nil
}

// ObjectKey - имя объекта для изображения
func ObjectKey(id uuid.UUID) string {
	return "events/" + id.String()
}

// ensureBucket создает бакет при первом обращении
func (s *ImageStore) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bucketExists {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: could not check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("storage: could not create bucket %s: %w", s.bucket, err)
		}
	}
	s.bucketExists = true
	return nil
}

// Put сохраняет изображение; size -1, если размер неизвестен
func (s *ImageStore) Put(ctx context.Context, id uuid.UUID, r io.Reader, size int64, contentType string) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, ObjectKey(id), r, size, minio.PutObjectOptions{
		ContentType: normalizeContentType(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: could not put image %s: %w", id, err)
	}
	return nil
}

func (s *ImageStore) Get(ctx context.Context, id uuid.UUID) (*Image, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, ObjectKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("storage: could not get image %s: %w", id, err)
	}
	// GetObject ленивый, ошибка отсутствия объекта приходит из Stat
	st, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, id)
		}
		return nil, fmt.Errorf("storage: could not stat image %s: %w", id, err)
	}
	return &Image{Body: obj, ContentType: st.ContentType, Size: st.Size}, nil
}

func (s *ImageStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.client.RemoveObject(ctx, s.bucket, ObjectKey(id), minio.RemoveObjectOptions{})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("storage: could not delete image %s: %w", id, err)
	}
	return nil
}

// Ping проверяет доступность хранилища
func (s *ImageStore) Ping(ctx context.Context) error {
	return s.ensureBucket(ctx)
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}
