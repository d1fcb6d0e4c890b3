package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"corona-spread-gif/models"
	"corona-spread-gif/storage"
	"corona-spread-gif/utils"
)

const normSuffix = "_norm_to_population"

// Renderer writes the intermediate HTML representation of a frame.
type Renderer interface {
	Render(frame *models.Frame, path string) error
}

// Rasterizer turns a rendered HTML frame into an image file.
type Rasterizer interface {
	Rasterize(ctx context.Context, htmlPath, imagePath string) error
}

// FrameBaseName is the file name stem for a date: "3/1/20" -> "3_1_20".
func FrameBaseName(date string, normalize bool) string {
	name := strings.ReplaceAll(date, "/", "_")
	if normalize {
		name += normSuffix
	}
	return name
}

// AnimationBaseName is the file name stem of the combined animation.
func AnimationBaseName(normalize bool) string {
	if normalize {
		return "corona" + normSuffix
	}
	return "corona"
}

// SequenceResult holds the ordered images and what happened for each date.
type SequenceResult struct {
	Images  []string
	Records []*models.FrameRecord
}

// Sequencer renders frames for consecutive dates, reusing images already on disk.
type Sequencer struct {
	frames     *FrameGenerator
	renderer   Renderer
	rasterizer Rasterizer
	records    storage.FrameRecordWriter
	outputDir  string
	logger     *utils.Logger
	now        func() time.Time
}

// NewSequencer creates a Sequencer writing into outputDir. records may be nil.
func NewSequencer(frames *FrameGenerator, renderer Renderer, rasterizer Rasterizer,
	records storage.FrameRecordWriter, outputDir string, logger *utils.Logger) *Sequencer {
	return &Sequencer{
		frames:     frames,
		renderer:   renderer,
		rasterizer: rasterizer,
		records:    records,
		outputDir:  outputDir,
		logger:     logger,
		now:        time.Now,
	}
}

// Paths returns the HTML and image paths for date.
func (s *Sequencer) Paths(date string) (htmlPath, imagePath string) {
	base := filepath.Join(s.outputDir, FrameBaseName(date, s.frames.Normalized()))
	return base + ".html", base + ".png"
}

// Sequence produces one image per date, in the order of dates.
func (s *Sequencer) Sequence(ctx context.Context, collection models.DatasetCollection,
	colors models.ColorMap, dates []string) (*SequenceResult, error) {
	result := &SequenceResult{
		Images:  make([]string, 0, len(dates)),
		Records: make([]*models.FrameRecord, 0, len(dates)),
	}

	for i, date := range dates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := s.frame(ctx, collection, colors, date)
		if err != nil {
			return nil, fmt.Errorf("frame %s: %w", date, err)
		}
		if s.records != nil {
			if err := s.records.Write([]*models.FrameRecord{record}); err != nil {
				return nil, fmt.Errorf("frame %s: record: %w", date, err)
			}
		}

		result.Images = append(result.Images, record.ImagePath)
		result.Records = append(result.Records, record)

		state := "rendered"
		if record.Reused {
			state = "reused"
		}
		s.logger.Info("[sequencer] %d/%d %s %s (%d markers)", i+1, len(dates), date, state, record.Markers)
	}
	return result, nil
}

func (s *Sequencer) frame(ctx context.Context, collection models.DatasetCollection,
	colors models.ColorMap, date string) (*models.FrameRecord, error) {
	htmlPath, imagePath := s.Paths(date)
	record := &models.FrameRecord{
		Date:       date,
		Normalized: s.frames.Normalized(),
		HTMLPath:   htmlPath,
		ImagePath:  imagePath,
	}

	if info, err := os.Stat(imagePath); err == nil && !info.IsDir() {
		record.Reused = true
		record.RenderedAt = info.ModTime()
		return record, nil
	}

	frame, err := s.frames.Generate(collection, date, colors)
	if err != nil {
		return nil, err
	}
	if err := s.renderer.Render(frame, htmlPath); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if err := s.rasterizer.Rasterize(ctx, htmlPath, imagePath); err != nil {
		return nil, fmt.Errorf("rasterize: %w", err)
	}

	record.Markers = len(frame.Markers)
	record.RenderedAt = s.now()
	return record, nil
}
