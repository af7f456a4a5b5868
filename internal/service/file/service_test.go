package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 13), uint8((x ^ y) * 3), 255})
		}
	}
	return img
}

func newTestService(t *testing.T) (FileService, *storage.LocalStorage) {
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	return NewFileService(local), local
}

func TestUploadPunchEvidence_PNGIsStoredAsJPEG(t *testing.T) {
	svc, local := newTestService(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(64, 48)))

	day := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	ref, err := svc.UploadPunchEvidence(ctx, "52998224725", day, "entry", &buf, "capture.png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "punches/2024-05-15/52998224725-entry-"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	rc, err := local.Download(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	_, format, err := image.Decode(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestUploadPunchEvidence_RejectsExtension(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UploadPunchEvidence(context.Background(), "52998224725", time.Now(), "entry", strings.NewReader("x"), "capture.gif")
	assert.Error(t, err)
}

func TestUploadPunchEvidence_RejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UploadPunchEvidence(context.Background(), "52998224725", time.Now(), "entry", strings.NewReader("not an image"), "capture.jpg")
	assert.Error(t, err)
}

func TestCompressImage_SmallJPEGUnchanged(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(32, 32), &jpeg.Options{Quality: 80}))

	out, err := compressImage(buf.Bytes(), evidenceMaxSize, evidenceMinSize)
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), out)
}

func TestUploadExceptionAttachment(t *testing.T) {
	svc, local := newTestService(t)
	ctx := context.Background()

	day := time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)
	ref, err := svc.UploadExceptionAttachment(ctx, "52998224725", day, strings.NewReader("%PDF-1.4"), "atestado.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "exceptions/52998224725/2024-05-15-"))

	exists, err := local.Exists(ctx, ref)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, svc.DeleteFile(ctx, ref))
	exists, err = local.Exists(ctx, ref)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.UploadExceptionAttachment(ctx, "52998224725", day, strings.NewReader("x"), "notes.txt")
	assert.Error(t, err)
}
