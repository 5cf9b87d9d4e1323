package image

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/adcraft/server/internal/model"
	"github.com/adcraft/server/internal/provider"
	"github.com/adcraft/server/internal/shared/config"
	"github.com/adcraft/server/internal/shared/metrics"
)

// ResolveInput carries everything an image request can supply. At most
// one branch wins; see Resolve.
type ResolveInput struct {
	ProductName   string
	BrandName     string
	Description   string
	ImageURL      string
	Upload        *multipart.FileHeader
	GenerateImage bool
}

// Service resolves the image for a generation request from one of
// three sources, in strict priority order: an uploaded file, a caller
// supplied URL, or an AI-generated photograph.
type Service struct {
	images  provider.ImageGenerator
	store   *Store
	cfg     config.UploadConfig
	prefix  string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates an image service. Metrics may be nil, as in tests.
func NewService(images provider.ImageGenerator, store *Store, cfg config.UploadConfig, apiPrefix string, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		images:  images,
		store:   store,
		cfg:     cfg,
		prefix:  apiPrefix,
		logger:  logger,
		metrics: m,
	}
}

// Resolve picks the image source for a request. A failure in the
// selected branch never propagates: it is logged and the request
// continues without an image, so ad copy still gets generated.
func (s *Service) Resolve(ctx context.Context, in ResolveInput) *model.ImageResult {
	if in.Upload != nil {
		result, err := s.saveUpload(in.Upload)
		if err != nil {
			s.logger.Error("failed to process uploaded image", zap.Error(err))
			return nil
		}
		return result
	}

	if in.ImageURL != "" {
		if err := validateURL(in.ImageURL); err != nil {
			s.logger.Warn("invalid image url", zap.String("url", in.ImageURL), zap.Error(err))
			return nil
		}
		return &model.ImageResult{
			ImageURL:  in.ImageURL,
			Source:    model.ImageSourceURL,
			Generated: false,
		}
	}

	if in.GenerateImage {
		result, err := s.generate(ctx, in)
		if err != nil {
			s.logger.Error("failed to generate product image",
				zap.String("product_name", in.ProductName),
				zap.Error(err))
			return nil
		}
		return result
	}

	return nil
}

func (s *Service) saveUpload(fh *multipart.FileHeader) (*model.ImageResult, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if err := s.validateUpload(fh, ext); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxFileSize {
		return nil, fmt.Errorf("upload exceeds %d bytes", s.cfg.MaxFileSize)
	}

	name := uploadFileName(ext)
	storedPath, err := s.store.Save(name, data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stored uploaded image",
		zap.String("file_name", name),
		zap.Int("size_bytes", len(data)))

	return &model.ImageResult{
		ImagePath: storedPath,
		ImageURL:  s.publicURL(name),
		Source:    model.ImageSourceUploaded,
		Generated: false,
	}, nil
}

func (s *Service) validateUpload(fh *multipart.FileHeader, ext string) error {
	if !contains(s.cfg.AllowedExtensions, ext) {
		return fmt.Errorf("extension %q not allowed", ext)
	}
	if ct := fh.Header.Get("Content-Type"); ct != "" && !contains(s.cfg.AllowedMIMETypes, ct) {
		return fmt.Errorf("content type %q not allowed", ct)
	}
	if fh.Size > s.cfg.MaxFileSize {
		return fmt.Errorf("file size %d exceeds maximum %d", fh.Size, s.cfg.MaxFileSize)
	}
	return nil
}

func (s *Service) generate(ctx context.Context, in ResolveInput) (*model.ImageResult, error) {
	start := time.Now()
	prompt := buildPrompt(in.ProductName, in.BrandName, in.Description)

	img, err := s.images.GenerateImage(ctx, prompt)
	if err != nil {
		s.recordGeneration("error", time.Since(start))
		return nil, err
	}
	s.recordGeneration("success", time.Since(start))

	name := generatedFileName(in.ProductName)
	storedPath, err := s.store.Save(name, img.Data)
	if err != nil {
		return nil, err
	}

	s.logger.Info("generated product image",
		zap.String("product_name", in.ProductName),
		zap.String("file_name", name),
		zap.String("mime_type", img.MIMEType))

	return &model.ImageResult{
		ImagePath: storedPath,
		ImageURL:  s.publicURL(name),
		Source:    model.ImageSourceGenerated,
		Generated: true,
	}, nil
}

// CleanupTemp removes generated files after their response has been
// delivered. Errors are logged and ignored, the files live under a
// scratch directory anyway.
func (s *Service) CleanupTemp(paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		name := filepath.Base(p)
		if !s.store.Exists(name) {
			continue
		}
		if err := s.store.Remove(name); err != nil {
			s.logger.Warn("failed to remove temp image", zap.String("path", p), zap.Error(err))
		}
	}
}

func (s *Service) recordGeneration(status string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordGeneration("image", status, elapsed)
	}
}

func (s *Service) publicURL(name string) string {
	return path.Join(s.prefix, "images", name)
}

// validateURL accepts absolute http(s) URLs with a host. Extension is
// deliberately not checked, plenty of valid image URLs carry none.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
