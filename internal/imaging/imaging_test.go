// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestDownscaleSmallImageUntouched(t *testing.T) {
	data := encodePNG(t, 800, 600)
	res, err := Downscale(data, "image/png", MaxWidth)
	require.NoError(t, err)

	assert.False(t, res.Resized)
	assert.Equal(t, data, res.Data)
	assert.Equal(t, 800, res.Width)
}

func TestDownscaleWidePNG(t *testing.T) {
	res, err := Downscale(encodePNG(t, 3200, 1000), "image/png", MaxWidth)
	require.NoError(t, err)

	assert.True(t, res.Resized)
	assert.Equal(t, "image/png", res.ContentType)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1600, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
}

func TestDownscaleWideJPEG(t *testing.T) {
	res, err := Downscale(encodeJPEG(t, 2000, 1000), "image/jpeg", 1000)
	require.NoError(t, err)

	assert.True(t, res.Resized)
	assert.Equal(t, "image/jpeg", res.ContentType)
	assert.Equal(t, 500, res.Height)
}

func TestDownscaleGarbage(t *testing.T) {
	_, err := Downscale([]byte("not an image"), "image/png", MaxWidth)
	assert.Error(t, err)
}

func TestResizable(t *testing.T) {
	assert.True(t, Resizable("image/jpeg"))
	assert.True(t, Resizable("image/webp"))
	assert.False(t, Resizable("image/gif"))
	assert.False(t, Resizable("image/svg+xml"))
	assert.False(t, Resizable("application/pdf"))
}
