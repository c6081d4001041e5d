package probe

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestGIF(t *testing.T, path string, frames int) {
	t.Helper()

	anim := &gif.GIF{}
	for i := 0; i < frames; i++ {
		img := image.NewPaletted(image.Rect(0, 0, 8, 4), color.Palette{
			color.RGBA{0, 0, 0, 255},
			color.RGBA{255, 255, 255, 255},
		})
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, 10)
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test GIF: %v", err)
	}
	defer func() { _ = file.Close() }()

	if err := gif.EncodeAll(file, anim); err != nil {
		t.Fatalf("Failed to encode test GIF: %v", err)
	}
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 6, 3))
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test PNG: %v", err)
	}
	defer func() { _ = file.Close() }()

	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
}

func TestInfo_GIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.gif")
	writeTestGIF(t, path, 1)

	line, err := Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}

	if !strings.HasPrefix(line, path+" : ") {
		t.Errorf("Expected line to start with %q, got %q", path+" : ", line)
	}
	if !strings.Contains(line, "8 x 4") {
		t.Errorf("Expected dimensions '8 x 4' in %q", line)
	}
	if !strings.Contains(line, "gif") {
		t.Errorf("Expected format 'gif' in %q", line)
	}
}

func TestInfo_AnimatedGIFReportsSubimages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animation.gif")
	writeTestGIF(t, path, 3)

	line, err := Info(path)
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if !strings.Contains(line, "3 subimages") {
		t.Errorf("Expected '3 subimages' in %q", line)
	}
}

func TestInfo_MissingFile(t *testing.T) {
	_, err := Info(filepath.Join(t.TempDir(), "does-not-exist.gif"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestInfo_InvalidData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.gif")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := Info(path)
	if err == nil {
		t.Error("Expected error for undecodable data")
	}
}

func TestConvert_PNGToGIF(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "in.png")
	target := filepath.Join(dir, "out.gif")
	writeTestPNG(t, source)

	if err := Convert(source, target); err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	// The written target must decode as GIF with the source dimensions
	line, err := Info(target)
	if err != nil {
		t.Fatalf("Info on conversion output failed: %v", err)
	}
	if !strings.Contains(line, "6 x 3") {
		t.Errorf("Expected dimensions '6 x 3' in %q", line)
	}
	if !strings.Contains(line, "gif") {
		t.Errorf("Expected format 'gif' in %q", line)
	}
}

func TestConvert_UnsupportedTarget(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "in.png")
	writeTestPNG(t, source)

	err := Convert(source, filepath.Join(dir, "out.tif"))
	if err == nil {
		t.Error("Expected error for unsupported target format")
	}
}

func TestConvert_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Convert(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.gif"))
	if err == nil {
		t.Error("Expected error for missing source")
	}
}

func TestIsSVGData(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected bool
	}{
		{
			name:     "svg root element",
			data:     []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`),
			expected: true,
		},
		{
			name:     "xml prolog before svg",
			data:     []byte(`<?xml version="1.0"?><svg viewBox="0 0 4 4"></svg>`),
			expected: true,
		},
		{
			name:     "empty data",
			data:     nil,
			expected: false,
		},
		{
			name:     "binary data",
			data:     []byte{0x89, 'P', 'N', 'G'},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSVGData(tt.data); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSVGSize(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 16"></svg>`)
	w, h, err := svgSize(data)
	if err != nil {
		t.Fatalf("svgSize failed: %v", err)
	}
	if w != 24 || h != 16 {
		t.Errorf("Expected 24x16, got %dx%d", w, h)
	}
}

func TestRasterizeSVG(t *testing.T) {
	data := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 8"><rect width="10" height="8" fill="#ff0000"/></svg>`)
	img, err := rasterizeSVG(data)
	if err != nil {
		t.Fatalf("rasterizeSVG failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 10 || bounds.Dy() != 8 {
		t.Errorf("Expected 10x8 raster, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}
