package animation

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/setanarut/apng"
)

// APNGAssembler writes frames as an animated PNG.
type APNGAssembler struct{}

func (a *APNGAssembler) Extension() string { return ".png" }

func (a *APNGAssembler) Assemble(images []string, out string) error {
	frames, err := decodeAll(images)
	if err != nil {
		return err
	}

	anim := &apng.APNG{
		Images: make([]image.Image, 0, len(frames)),
		Delays: make([]uint16, 0, len(frames)),
	}
	for _, img := range frames {
		anim.Images = append(anim.Images, toNRGBA(img))
		anim.Delays = append(anim.Delays, frameDelay)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("apng: create %q: %w", out, err)
	}
	if err := apng.EncodeAll(f, anim); err != nil {
		_ = f.Close()
		_ = os.Remove(out)
		return fmt.Errorf("apng: encode: %w", err)
	}
	return f.Close()
}

// toNRGBA gives every frame the same colour model, which the encoder requires.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	n := image.NewNRGBA(b)
	draw.Draw(n, b, img, b.Min, draw.Src)
	return n
}
