// Package export renders a presentation and a theme into a single .pptx file.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ContentType is the media type of exported files.
const ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// Placeholder replaces an image that could not be embedded.
const Placeholder = "Image could not be loaded"

// Bullet prefixes every content line.
const Bullet = "• "

// ErrSerialize wraps failures of the final document write. No bytes are
// delivered when it is returned.
var ErrSerialize = errors.New("failed to serialize presentation")

// Config holds export settings.
type Config struct {
	ImageTimeout  time.Duration `mapstructure:"image_timeout"`
	MaxImageBytes int64         `mapstructure:"max_image_bytes"`
	ImageWorkers  int           `mapstructure:"image_workers"`
	DefaultTheme  string        `mapstructure:"default_theme"`
	// BlockPrivateImages refuses remote images on loopback, private and
	// link-local addresses.
	BlockPrivateImages bool `mapstructure:"block_private_images"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ImageTimeout:  10 * time.Second,
		MaxImageBytes: 10 << 20,
		ImageWorkers:  4,

		BlockPrivateImages: true,
	}
}

// Artifact is a finished export.
type Artifact struct {
	FileName     string
	Data         []byte
	SlideCount   int
	Placeholders int
}

// ImageSource resolves image references.
type ImageSource interface {
	Load(ctx context.Context, ref string) (*Image, error)
}

// Pipeline converts presentations into files.
type Pipeline struct {
	newBuilder func() DeckBuilder
	images     ImageSource
	workers    int
	logger     *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBuilder replaces the document builder factory.
func WithBuilder(fn func() DeckBuilder) Option {
	return func(p *Pipeline) { p.newBuilder = fn }
}

// WithImageSource replaces the image loader.
func WithImageSource(src ImageSource) Option {
	return func(p *Pipeline) { p.images = src }
}

// NewPipeline creates a Pipeline writing PowerPoint files with GoPPT.
func NewPipeline(cfg Config, logger *zap.Logger, opts ...Option) *Pipeline {
	var loaderOpts []LoaderOption
	if cfg.BlockPrivateImages {
		loaderOpts = append(loaderOpts, WithPublicAddressesOnly())
	}
	p := &Pipeline{
		newBuilder: NewGoPPTBuilder,
		images:     NewImageLoader(cfg.ImageTimeout, cfg.MaxImageBytes, loaderOpts...),
		workers:    cfg.ImageWorkers,
		logger:     logger,
	}
	if p.workers <= 0 {
		p.workers = 1
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Export renders pres with theme. The output depends only on its inputs:
// one output slide per input slide, in order.
func (p *Pipeline) Export(ctx context.Context, pres *models.Presentation, theme models.Theme) (*Artifact, error) {
	start := time.Now()
	a, err := p.export(ctx, pres, theme)
	result := "ok"
	if err != nil {
		result = "error"
	}
	exportsTotal.WithLabelValues(result).Inc()
	exportDuration.Observe(time.Since(start).Seconds())
	return a, err
}

func (p *Pipeline) export(ctx context.Context, pres *models.Presentation, theme models.Theme) (*Artifact, error) {
	if err := pres.Validate(); err != nil {
		return nil, err
	}

	images := p.prefetch(ctx, pres.Slides)

	b := p.newBuilder()
	b.Begin(pres.Title)

	placeholders := 0
	for i := range pres.Slides {
		s := &pres.Slides[i]
		b.NewSlide(theme.Background)

		b.AddText(TextBlock{
			Role:  RoleTitle,
			Frame: titleFrame,
			Lines: []string{s.DisplayTitle()},
			Color: theme.Text,
			Align: AlignCenter,
		})

		hasImage := s.HasImage()
		if len(s.Content) > 0 {
			frame := bodyFrameFull
			if hasImage {
				frame = bodyFrameSplit
			}
			lines := make([]string, len(s.Content))
			for j, c := range s.Content {
				lines[j] = Bullet + c
			}
			b.AddText(TextBlock{
				Role:  RoleBody,
				Frame: frame,
				Lines: lines,
				Color: theme.Text,
				Align: AlignLeft,
			})
		}

		if !hasImage {
			continue
		}
		if img := images[i]; img != nil {
			b.AddImage(img, imageFrame)
			continue
		}
		placeholders++
		b.AddText(TextBlock{
			Role:  RolePlaceholder,
			Frame: imageFrame,
			Lines: []string{Placeholder},
			Color: theme.Text,
			Align: AlignCenter,
		})
	}

	data, err := b.Bytes()
	if err != nil {
		p.logger.Error("presentation serialization failed",
			zap.String("title", pres.Title),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrSerialize, err)
	}

	p.logger.Info("presentation exported",
		zap.String("title", pres.Title),
		zap.String("theme", theme.Name),
		zap.Int("slides", len(pres.Slides)),
		zap.Int("placeholders", placeholders),
		zap.Int("bytes", len(data)),
	)
	return &Artifact{
		FileName:     pres.FileName(".pptx"),
		Data:         data,
		SlideCount:   len(pres.Slides),
		Placeholders: placeholders,
	}, nil
}

// prefetch loads every slide image concurrently. The result is indexed by
// slide; a nil entry means the slide gets a placeholder.
func (p *Pipeline) prefetch(ctx context.Context, slides []models.Slide) []*Image {
	images := make([]*Image, len(slides))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := range slides {
		ref := slides[i].ImageRef()
		if ref == "" {
			continue
		}
		g.Go(func() error {
			img, err := p.images.Load(ctx, ref)
			if err != nil {
				imageFailuresTotal.Inc()
				p.logger.Warn("slide image unavailable",
					zap.Int("slide", i+1),
					zap.String("kind", string(models.ClassifyImage(ref))),
					zap.Error(err),
				)
				return nil
			}
			images[i] = img
			return nil
		})
	}
	_ = g.Wait()
	return images
}

// ErrUnsafeFileName is returned by Save when the artifact's file name would
// place the document outside the target directory.
var ErrUnsafeFileName = errors.New("file name escapes output directory")

// Save writes a to dir under its file name and returns the full path. The
// document is written to a temporary file first and renamed into place, so a
// failed write never leaves a truncated .pptx behind.
func Save(dir string, a *Artifact) (string, error) {
	path := filepath.Join(dir, a.FileName)
	if filepath.Dir(path) != filepath.Clean(dir) || filepath.Base(path) != a.FileName {
		return "", fmt.Errorf("%w: %q", ErrUnsafeFileName, a.FileName)
	}

	tmp, err := os.CreateTemp(dir, ".slidecraft-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("rename to %s: %w", path, err)
	}
	return path, nil
}
