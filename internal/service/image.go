package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-go/backend/config"
)

var ErrInvalidImage = errors.New("image must be a base64 data URI")

// ImageStore persists decoded image bytes and returns a serving URL or path
type ImageStore interface {
	Save(ctx context.Context, data []byte, fileName, contentType string) (string, error)
}

// ImageService decodes base64 data-URI recipe images and stores them
type ImageService struct {
	store ImageStore
}

func NewImageService(store ImageStore) *ImageService {
	return &ImageService{store: store}
}

// ProcessDataURI decodes a "data:image/<ext>;base64,<payload>" string,
// stores the image under a generated name and returns its URL. A value that
// is not a data URI (an already-stored URL on partial update) passes
// through untouched.
func (s *ImageService) ProcessDataURI(ctx context.Context, value string) (string, error) {
	if !strings.HasPrefix(value, "data:image") {
		return value, nil
	}

	header, payload, found := strings.Cut(value, ";base64,")
	if !found {
		return "", ErrInvalidImage
	}
	ext := header[strings.LastIndex(header, "/")+1:]
	if ext == "" {
		return "", ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidImage
	}

	fileName := fmt.Sprintf("recipes/images/%s.%s", uuid.New().String(), ext)
	return s.store.Save(ctx, data, fileName, "image/"+ext)
}

// S3Store uploads images to an S3 bucket
type S3Store struct {
	s3Config *config.S3Config
}

func NewS3Store(s3Config *config.S3Config) *S3Store {
	return &S3Store{s3Config: s3Config}
}

func (s *S3Store) Save(ctx context.Context, data []byte, fileName, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Debug().Str("url", publicURL).Msg("uploaded image to S3")
	return publicURL, nil
}

// LocalStore writes images below a media directory on disk, for
// deployments without S3 and for tests.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

func (s *LocalStore) Save(_ context.Context, data []byte, fileName, _ string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(fileName))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return "/media/" + fileName, nil
}
