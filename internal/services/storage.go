package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// Upload folders, one per resource family.
const (
	FolderProducts     = "products"
	FolderTouristSpots = "tourist_spots"
	FolderUserProfiles = "user_profiles"
)

// ImageStore persists an uploaded image and returns the URL it is served from.
type ImageStore interface {
	Upload(ctx context.Context, folder string, header *multipart.FileHeader) (string, error)
}

// UploadAll stores every file in order and returns their URLs. Nothing is
// rolled back on failure; orphaned objects are harmless.
func UploadAll(ctx context.Context, store ImageStore, folder string, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for i, file := range files {
		u, err := store.Upload(ctx, folder, file)
		if err != nil {
			return nil, fmt.Errorf("file %d (%s): %w", i+1, file.Filename, err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}

var allowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

func IsAllowedImage(header *multipart.FileHeader) bool {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFromExtension(header.Filename)
	}
	for _, valid := range allowedImageTypes {
		if strings.EqualFold(contentType, valid) {
			return true
		}
	}
	return false
}

func contentTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func objectKey(folder, filename string) string {
	timestamp := time.Now().Format("2006/01/02")
	return fmt.Sprintf("%s/%s/%s%s", folder, timestamp, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
}

type S3Service struct {
	client     *s3.S3
	bucketName string
	region     string
}

func NewS3Service(region, bucketName, accessKey, secretKey string) (*S3Service, error) {
	cfg := &aws.Config{Region: aws.String(region)}
	if accessKey != "" && secretKey != "" {
		cfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	return &S3Service{
		client:     s3.New(sess),
		bucketName: bucketName,
		region:     region,
	}, nil
}

func (s *S3Service) Upload(ctx context.Context, folder string, header *multipart.FileHeader) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFromExtension(header.Filename)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := io.Copy(buffer, file); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	key := objectKey(folder, header.Filename)
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucketName),
		Key:          aws.String(key),
		Body:         bytes.NewReader(buffer.Bytes()),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, key), nil
}

// LocalStorage writes uploads below dir and serves them from baseURL/uploads.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (l *LocalStorage) Dir() string {
	return l.dir
}

func (l *LocalStorage) Upload(_ context.Context, folder string, header *multipart.FileHeader) (string, error) {
	key := objectKey(folder, header.Filename)
	target := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return l.baseURL + "/" + path.Join("uploads", (&url.URL{Path: key}).EscapedPath()), nil
}
