// Package probe implements a small built-in replacement for the external
// image tool: a metadata query over a single file and a format conversion.
// It exists so the suite can run on machines where the external tool is not
// installed; the external tool remains the authority on format handling.
package probe

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Info reads the header of the image at path and returns a single metadata
// line in the shape the external tool prints:
//
//	<path> : <width> x <height>, <channels> channel, uint8 <format>
//
// Animated GIFs additionally report their frame count.
func Info(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	if isSVGData(data) {
		w, h, err := svgSize(data)
		if err != nil {
			return "", fmt.Errorf("failed to read SVG size of %s: %w", path, err)
		}
		return fmt.Sprintf("%s : %d x %d, 4 channel, uint8 svg", path, w, h), nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}

	line := fmt.Sprintf("%s : %d x %d, %d channel, uint8 %s",
		path, cfg.Width, cfg.Height, channelCount(cfg.ColorModel), format)

	if format == "gif" {
		anim, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("failed to decode GIF frames of %s: %w", path, err)
		}
		if len(anim.Image) > 1 {
			line += fmt.Sprintf(", %d subimages", len(anim.Image))
		}
	}

	return line, nil
}

// Convert decodes the image at source and writes it to target, encoded in the
// format implied by the target extension. Only GIF and PNG targets are
// supported by the built-in tool.
func Convert(source, target string) error {
	img, err := decode(source)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(target)); ext {
	case ".gif":
		if err := gif.Encode(&buf, img, &gif.Options{NumColors: 256}); err != nil {
			return fmt.Errorf("failed to encode %s as GIF: %w", target, err)
		}
	case ".png":
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("failed to encode %s as PNG: %w", target, err)
		}
	default:
		return fmt.Errorf("unsupported target format: %s", ext)
	}

	if err := os.WriteFile(target, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

// decode reads and decodes any supported input format, rasterizing SVG input.
func decode(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if isSVGData(data) {
		img, err := rasterizeSVG(data)
		if err != nil {
			return nil, fmt.Errorf("failed to rasterize SVG %s: %w", path, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// channelCount maps a color model to the channel count reported in info lines.
func channelCount(model color.Model) int {
	switch model {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.NRGBAModel, color.NRGBA64Model, color.RGBAModel, color.RGBA64Model:
		return 4
	default:
		return 3
	}
}
