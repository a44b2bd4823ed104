package service

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
)

// ImageService 商品图片流水线：校验 → 缩放 → 编码。
// 由上传接口显式调用，不挂在持久化钩子上。
type ImageService struct {
	cfg *config.MediaConfig
}

// NewImageService 创建图片服务
func NewImageService(cfg *config.MediaConfig) *ImageService {
	return &ImageService{cfg: cfg}
}

// Process 校验上传图片并生成统一规格的 JPEG 缩略图。
// 超过字节上限返回 ErrImageTooLarge，
// 原图分辨率不在 [MinResolution, MaxResolution] 区间内返回 ErrResolutionOutOfBounds。
func (s *ImageService) Process(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(raw)) > s.cfg.MaxBytes {
		return nil, ErrImageTooLarge
	}

	// 先只解头部拿分辨率，避免越界图片的全量解码
	meta, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}
	if meta.Width < s.cfg.MinResolution || meta.Height < s.cfg.MinResolution ||
		meta.Width > s.cfg.MaxResolution || meta.Height > s.cfg.MaxResolution {
		return nil, ErrResolutionOutOfBounds
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fill(img, s.cfg.ThumbSize, s.cfg.ThumbSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(s.cfg.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveFor 处理上传并以商品 slug 命名落盘，返回可访问的相对路径
func (s *ImageService) SaveFor(slug string, r io.Reader) (string, error) {
	data, err := s.Process(r)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	name := slug + ".jpg"
	if err := os.WriteFile(filepath.Join(s.cfg.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}
	return "/assets/img/upload/" + name, nil
}
