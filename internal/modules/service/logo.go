package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pilotdata/project/internal/infra/blob"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	logoMinLength = 32
	logoMIME      = "image/png"
)

var logoLoc = []string{"body", "base64"}

// DecodeLogo validates a base64 encoded PNG and returns its bytes. Every
// failure is a validation error on the base64 field.
func DecodeLogo(encoded string, sizeLimit int) ([]byte, error) {
	if len(encoded) < logoMinLength {
		return nil, apperr.Validation(fmt.Sprintf("ensure this value has at least %d characters", logoMinLength), logoLoc...)
	}

	// reject oversized payloads before decoding them
	if base64.RawStdEncoding.DecodedLen(len(strings.TrimRight(encoded, "="))) > sizeLimit {
		return nil, apperr.Validation(fmt.Sprintf("image exceeds the size limit of %d bytes", sizeLimit), logoLoc...)
	}

	raw, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.StdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, apperr.Validation("invalid base64 string", logoLoc...)
	}

	if len(raw) > sizeLimit {
		return nil, apperr.Validation(fmt.Sprintf("image exceeds the size limit of %d bytes", sizeLimit), logoLoc...)
	}

	if !mimetype.Detect(raw).Is(logoMIME) {
		return nil, apperr.Validation("unsupported image format", logoLoc...)
	}
	return raw, nil
}

// ResizeLogo scales a PNG to a dim x dim PNG.
func ResizeLogo(raw []byte, dim int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, dim, dim))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ObjectStore puts objects, implemented by *blob.Storage.
type ObjectStore interface {
	CreateBucket(ctx context.Context, name string) error
	PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
}

type LogoUploader interface {
	ConvertAndUpload(ctx context.Context, raw []byte, filename string) error
}

type logoUploader struct {
	store  ObjectStore
	bucket string
	dim    int
	log    *zap.Logger
}

func NewLogoUploader(store ObjectStore, bucket string, dim int, log *zap.Logger) LogoUploader {
	return &logoUploader{store: store, bucket: bucket, dim: dim, log: log}
}

// ConvertAndUpload resizes the image and stores it as filename in the logo
// bucket. The bucket is created when it does not exist and the upload is
// tried once more.
func (u *logoUploader) ConvertAndUpload(ctx context.Context, raw []byte, filename string) error {
	img, err := ResizeLogo(raw, u.dim)
	if err != nil {
		u.log.Error("unable to convert image", zap.Error(err))
		return apperr.Validation("unable to read image", logoLoc...)
	}

	err = u.upload(ctx, img, filename)
	if errors.Is(err, blob.ErrBucketNotFound) {
		u.log.Warn("logo bucket does not exist, creating it", zap.String("bucket", u.bucket))
		if err := u.store.CreateBucket(ctx, u.bucket); err != nil {
			u.log.Error("unable to create logo bucket", zap.String("bucket", u.bucket), zap.Error(err))
			return apperr.Unhandled(fmt.Sprintf("unable to create bucket %s", u.bucket), err)
		}
		err = u.upload(ctx, img, filename)
	}
	if err != nil {
		u.log.Error("unable to upload logo", zap.String("file", filename), zap.Error(err))
		return apperr.Unhandled(fmt.Sprintf("unable to upload %s", filename), err)
	}
	u.log.Info("logo uploaded", zap.String("bucket", u.bucket), zap.String("file", filename))
	return nil
}

func (u *logoUploader) upload(ctx context.Context, img []byte, filename string) error {
	return u.store.PutObject(ctx, u.bucket, filename, bytes.NewReader(img), logoMIME)
}
