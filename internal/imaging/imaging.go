// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging downscales uploaded catalog images so storefront pages
// and printed catalogs never fetch oversized originals.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxWidth is the widest image kept as uploaded.
	MaxWidth = 1600

	// jpegQuality is used when re-encoding photos.
	jpegQuality = 85

	// maxPixels caps decoded size to refuse decompression bombs.
	// 10000x10000 = 100 million pixels, ~400 MB decoded in RGBA.
	maxPixels = 100_000_000
)

// ErrTooManyPixels is returned for images whose decoded size exceeds the
// pixel budget.
var ErrTooManyPixels = errors.New("image dimensions too large")

// Resizable reports whether images of the given MIME type are downscaled.
// GIF is excluded to preserve animation; SVG is vector.
func Resizable(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}

// Result is a processed image ready for upload.
type Result struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

// Downscale shrinks an image wider than maxWidth to exactly maxWidth,
// preserving the aspect ratio. Narrower images are returned untouched.
// PNG stays PNG; JPEG and WebP are written as JPEG since there is no
// pure Go WebP encoder.
func Downscale(data []byte, contentType string, maxWidth int) (*Result, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, fmt.Errorf("imaging: %dx%d: %w", cfg.Width, cfg.Height, ErrTooManyPixels)
	}

	if cfg.Width <= maxWidth {
		return &Result{Data: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}

	bounds := src.Bounds()
	height := max(1, int(float64(bounds.Dy())*float64(maxWidth)/float64(bounds.Dx())))
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	outType := "image/jpeg"
	if contentType == "image/png" {
		outType = "image/png"
		err = png.Encode(&buf, dst)
	} else {
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}

	return &Result{
		Data:        buf.Bytes(),
		ContentType: outType,
		Width:       maxWidth,
		Height:      height,
		Resized:     true,
	}, nil
}
