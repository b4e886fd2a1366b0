package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/healio-platform/healio-api/internal/config"
	"github.com/healio-platform/healio-api/internal/httperr"
)

const (
	MaxUploadBytes = 10 << 20 // 10MB
	maxImageWidth  = 1600
	keyPrefix      = "therapist-certificates/"
)

// Uploader stores therapist certificates in S3. PDFs go up untouched;
// jpeg/png scans are downscaled and re-encoded as webp first.
type Uploader struct {
	client    *s3.Client
	bucket    string
	region    string
	publicURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return &Uploader{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		region:    cfg.S3Region,
		publicURL: cfg.S3PublicURL,
	}
}

// Upload stores the certificate and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, contentType string, data []byte) (string, error) {
	var ext string

	switch contentType {
	case "application/pdf":
		ext = ".pdf"
	case "image/jpeg", "image/png":
		converted, err := reencodeImage(contentType, data)
		if err != nil {
			return "", err
		}
		data = converted
		contentType = "image/webp"
		ext = ".webp"
	default:
		return "", httperr.ErrBusiness("unsupported_file_type")
	}

	key := keyPrefix + uuid.NewString() + ext

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return u.objectURL(key), nil
}

func (u *Uploader) objectURL(key string) string {
	if u.publicURL != "" {
		return fmt.Sprintf("%s/%s", u.publicURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}

// reencodeImage decodes a jpeg/png scan, caps its width and returns webp
// bytes. Certificates are display-only, so lossy webp is plenty.
func reencodeImage(contentType string, data []byte) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	switch contentType {
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	img = downscale(img, maxImageWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func downscale(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth {
		return img
	}

	height := bounds.Dy() * maxWidth / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
