package animation

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
)

// frameDelay is the per-frame delay in 100ths of a second.
const frameDelay = 10

// GIFAssembler encodes frames as an animated GIF, one output frame per input image.
type GIFAssembler struct{}

func (a *GIFAssembler) Extension() string { return ".gif" }

func (a *GIFAssembler) Assemble(images []string, out string) error {
	frames, err := decodeAll(images)
	if err != nil {
		return err
	}

	anim := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	for _, img := range frames {
		anim.Image = append(anim.Image, toPaletted(img))
		anim.Delay = append(anim.Delay, frameDelay)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("gif: create %q: %w", out, err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		_ = f.Close()
		return fmt.Errorf("gif: encode: %w", err)
	}
	return f.Close()
}

func toPaletted(img image.Image) *image.Paletted {
	if p, ok := img.(*image.Paletted); ok {
		return p
	}
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(p, b, img, b.Min)
	return p
}
