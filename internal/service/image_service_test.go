package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	_ "image/jpeg"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
)

func mediaConfig(dir string) *config.MediaConfig {
	return &config.MediaConfig{
		Dir:           dir,
		MaxBytes:      3 << 20,
		MinResolution: 400,
		MaxResolution: 4000,
		ThumbSize:     200,
		JPEGQuality:   90,
	}
}

// pngBytes 生成指定尺寸的测试 PNG
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestProcessProducesThumbnail(t *testing.T) {
	svc := NewImageService(mediaConfig(t.TempDir()))

	out, err := svc.Process(bytes.NewReader(pngBytes(t, 800, 600)))
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	meta, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("thumbnail format = %s, want jpeg", format)
	}
	if meta.Width != 200 || meta.Height != 200 {
		t.Fatalf("thumbnail size = %dx%d, want 200x200", meta.Width, meta.Height)
	}
}

func TestProcessRejectsSmallImage(t *testing.T) {
	svc := NewImageService(mediaConfig(t.TempDir()))

	// 宽高都不足
	if _, err := svc.Process(bytes.NewReader(pngBytes(t, 399, 399))); !errors.Is(err, ErrResolutionOutOfBounds) {
		t.Fatalf("want ErrResolutionOutOfBounds, got %v", err)
	}
	// 只有一边不足同样拒绝
	if _, err := svc.Process(bytes.NewReader(pngBytes(t, 800, 399))); !errors.Is(err, ErrResolutionOutOfBounds) {
		t.Fatalf("short side: want ErrResolutionOutOfBounds, got %v", err)
	}
}

func TestProcessRejectsOversizedUpload(t *testing.T) {
	cfg := mediaConfig(t.TempDir())
	cfg.MaxBytes = 1024 // 压低上限触发字节检查
	svc := NewImageService(cfg)

	if _, err := svc.Process(bytes.NewReader(pngBytes(t, 800, 600))); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("want ErrImageTooLarge, got %v", err)
	}
}

func TestProcessRejectsGarbage(t *testing.T) {
	svc := NewImageService(mediaConfig(t.TempDir()))
	if _, err := svc.Process(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Fatalf("garbage input must fail to decode")
	}
}

func TestSaveForWritesFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewImageService(mediaConfig(dir))

	url, err := svc.SaveFor("bauer-vapor-x3", bytes.NewReader(pngBytes(t, 600, 600)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "/assets/img/upload/bauer-vapor-x3.jpg" {
		t.Fatalf("url = %s", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "bauer-vapor-x3.jpg")); err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
}
