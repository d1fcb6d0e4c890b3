package animation

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"strings"

	"corona-spread-gif/models"
)

// Formats accepted by New.
const (
	FormatGIF  = "gif"
	FormatAPNG = "apng"
)

// Assembler writes an ordered list of images as one animated file.
type Assembler interface {
	Assemble(images []string, out string) error
	Extension() string
}

// New returns the assembler for format.
func New(format string) (Assembler, error) {
	switch strings.ToLower(format) {
	case FormatGIF, "":
		return &GIFAssembler{}, nil
	case FormatAPNG:
		return &APNGAssembler{}, nil
	default:
		return nil, models.Configf("unknown animation format %q (want gif or apng)", format)
	}
}

func decodeAll(paths []string) ([]image.Image, error) {
	if len(paths) == 0 {
		return nil, models.Configf("no frames to assemble")
	}
	images := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		img, err := decode(p)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("animation: open frame %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("animation: decode frame %q: %w", path, err)
	}
	return img, nil
}
