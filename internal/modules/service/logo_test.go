package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/pilotdata/project/internal/infra/blob"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func assertLogoValidation(t *testing.T, err error) {
	t.Helper()
	require.ErrorIs(t, err, apperr.ErrValidation)
	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	require.Len(t, e.Fields, 1)
	assert.Equal(t, []string{"body", "base64"}, e.Fields[0].Loc)
}

func TestDecodeLogo(t *testing.T) {
	raw := testPNG(t, 8, 8)

	t.Run("url safe alphabet", func(t *testing.T) {
		got, err := DecodeLogo(base64.URLEncoding.EncodeToString(raw), 1<<20)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	t.Run("standard alphabet", func(t *testing.T) {
		got, err := DecodeLogo(base64.StdEncoding.EncodeToString(raw), 1<<20)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	})

	invalid := []struct {
		name    string
		encoded string
		limit   int
	}{
		{name: "too short", encoded: "aGVsbG8=", limit: 1 << 20},
		{name: "not base64", encoded: strings.Repeat("!", 40), limit: 1 << 20},
		{name: "over the size limit", encoded: base64.StdEncoding.EncodeToString(raw), limit: len(raw) - 1},
		{name: "not a png", encoded: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("plain text ", 8))), limit: 1 << 20},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLogo(tt.encoded, tt.limit)
			assertLogoValidation(t, err)
		})
	}
}

func TestDecodeLogo_SizeCheckedBeforeDecoding(t *testing.T) {
	_, err := DecodeLogo(strings.Repeat("!", 400), 100)
	assertLogoValidation(t, err)
	assert.Contains(t, err.Error(), "size limit of 100 bytes")

	raw := testPNG(t, 8, 8)
	got, err := DecodeLogo(base64.StdEncoding.EncodeToString(raw), len(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestResizeLogo(t *testing.T) {
	out, err := ResizeLogo(testPNG(t, 20, 10), 6)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 6), img.Bounds())

	_, err = ResizeLogo([]byte("not a png"), 6)
	assert.Error(t, err)
}

func TestLogoUploader_ConvertAndUpload(t *testing.T) {
	ctx := context.Background()
	raw := testPNG(t, 4, 4)
	missing := fmt.Errorf("put object: %w", blob.ErrBucketNotFound)

	tests := []struct {
		name    string
		setup   func(*MockObjectStore)
		wantErr error
	}{
		{
			name: "uploads",
			setup: func(m *MockObjectStore) {
				m.On("PutObject", ctx, "logos", "a.png", mock.Anything, "image/png").Return(nil).Once()
			},
		},
		{
			name: "creates the bucket and retries once",
			setup: func(m *MockObjectStore) {
				m.On("PutObject", ctx, "logos", "a.png", mock.Anything, "image/png").Return(missing).Once()
				m.On("CreateBucket", ctx, "logos").Return(nil).Once()
				m.On("PutObject", ctx, "logos", "a.png", mock.Anything, "image/png").Return(nil).Once()
			},
		},
		{
			name: "bucket creation fails",
			setup: func(m *MockObjectStore) {
				m.On("PutObject", ctx, "logos", "a.png", mock.Anything, "image/png").Return(missing).Once()
				m.On("CreateBucket", ctx, "logos").Return(errors.New("access denied")).Once()
			},
			wantErr: apperr.ErrUnhandled,
		},
		{
			name: "retry fails",
			setup: func(m *MockObjectStore) {
				m.On("PutObject", ctx, "logos", "a.png", mock.Anything, "image/png").Return(missing).Twice()
				m.On("CreateBucket", ctx, "logos").Return(nil).Once()
			},
			wantErr: apperr.ErrUnhandled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockObjectStore{}
			tt.setup(store)

			err := NewLogoUploader(store, "logos", 8, zap.NewNop()).ConvertAndUpload(ctx, raw, "a.png")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestLogoUploader_UploadsResizedPNG(t *testing.T) {
	ctx := context.Background()
	store := &MockObjectStore{}
	var uploaded []byte
	store.On("PutObject", ctx, "logos", "a.png", mock.Anything, "image/png").
		Run(func(args mock.Arguments) {
			b, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(t, err)
			uploaded = b
		}).
		Return(nil).Once()

	require.NoError(t, NewLogoUploader(store, "logos", 5, zap.NewNop()).ConvertAndUpload(ctx, testPNG(t, 9, 3), "a.png"))

	img, err := png.Decode(bytes.NewReader(uploaded))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 5), img.Bounds())
}

func TestLogoUploader_UnreadableImage(t *testing.T) {
	store := &MockObjectStore{}
	err := NewLogoUploader(store, "logos", 5, zap.NewNop()).ConvertAndUpload(context.Background(), []byte("garbage"), "a.png")
	assertLogoValidation(t, err)
	store.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
