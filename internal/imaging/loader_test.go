package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates a solid PNG file in a temp directory and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-image.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, createInMemoryImage(width, height, c)); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	require.NotNil(t, cache)
	assert.NotNil(t, cache.images)
	assert.Zero(t, cache.Len())
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	require.NoError(t, err)
	assert.Equal(t, 100, img1.Bounds().Dx())
	assert.Equal(t, 80, img1.Bounds().Dy())

	img2, err := cache.Load(imgPath)
	require.NoError(t, err)
	assert.True(t, img1 == img2, "second Load did not return cached image")
}

func TestImageCache_LoadBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzle.bmp")
	require.NoError(t, SaveBMP(path, createTwoToneImage(32, 24, color.Black, color.White)))

	img, err := NewImageCache().Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 24), img.Bounds())
	assert.Equal(t, uint8(0), Luma(img.At(0, 0)))
}

func TestImageCache_LoadErrors(t *testing.T) {
	cache := NewImageCache()

	_, err := cache.Load("/nonexistent/path/to/image.png")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "invalid.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = cache.Load(bad)
	assert.Error(t, err)
	assert.Zero(t, cache.Len())
}

func TestImageCache_MaxPixels(t *testing.T) {
	cache := NewImageCache()
	cache.MaxPixels = 100
	imgPath := createTestImage(t, 20, 20, color.White)

	_, err := cache.Load(imgPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrImageTooLarge))
	assert.Zero(t, cache.Len())
}

func TestImageCache_ClearEvictPut(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	_, err := cache.Load(imgPath)
	require.NoError(t, err)
	cache.Put("memory", createInMemoryImage(5, 5, color.White))
	assert.Equal(t, 2, cache.Len())

	cache.Evict(imgPath)
	cache.Evict("/nonexistent/path")
	assert.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Zero(t, cache.Len())
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load failed: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 64, 48, color.RGBA{0, 0, 255, 255})

	info, err := LoadImageInfo(cache, imgPath)
	require.NoError(t, err)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 48, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "8-bit", info.ColorDepth)
	assert.Positive(t, info.FileSizeBytes)

	_, err = LoadImageInfo(cache, "/nonexistent/image.png")
	assert.Error(t, err)
}

func TestLoadImageInfo_BMPFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.BMP")
	require.NoError(t, SaveBMP(path, createInMemoryImage(8, 8, color.White)))

	info, err := LoadImageInfo(NewImageCache(), path)
	require.NoError(t, err)
	assert.Equal(t, "bmp", info.Format)
}

func TestEncodePNGBase64(t *testing.T) {
	s, err := EncodePNGBase64(createInMemoryImage(4, 4, color.Black))
	require.NoError(t, err)
	assert.NotEmpty(t, s)
}
