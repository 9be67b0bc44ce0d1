package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/kovidgoyal/imaging"
)

// Fit returns the largest size with the aspect ratio of srcW x srcH that fits
// inside w x h. Both results are at least 1 when all inputs are positive.
func Fit(srcW, srcH, w, h int) (int, int) {
	if srcW <= 0 || srcH <= 0 || w <= 0 || h <= 0 {
		return 0, 0
	}
	// compare srcW/srcH with w/h without floating point
	if srcW*h > w*srcH {
		nh := srcH * w / srcW
		return w, max(nh, 1)
	}
	nw := srcW * h / srcH
	return max(nw, 1), h
}

// Letterbox scales src to fit inside w x h and centres it on an opaque black
// canvas of exactly w x h. Non-positive sizes yield an empty image.
func Letterbox(src image.Image, w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 || src == nil {
		return image.NewNRGBA(image.Rectangle{})
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	b := src.Bounds()
	fw, fh := Fit(b.Dx(), b.Dy(), w, h)
	if fw == 0 || fh == 0 {
		return canvas
	}

	scaled := src
	if fw != b.Dx() || fh != b.Dy() {
		scaled = imaging.Resize(src, fw, fh, imaging.Lanczos)
	}

	off := image.Pt((w-fw)/2, (h-fh)/2)
	dst := image.Rectangle{Min: off, Max: off.Add(image.Pt(fw, fh))}
	draw.Draw(canvas, dst, scaled, scaled.Bounds().Min, draw.Over)
	return canvas
}
