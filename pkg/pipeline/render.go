package pipeline

import (
	"context"

	perrors "github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/poster"
	"github.com/matzehuels/blobposter/pkg/render/sink"
)

// Render encodes c in every format of opts.Formats.
func Render(ctx context.Context, c *poster.Canvas, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, c, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat encodes c in a single format.
func RenderFormat(ctx context.Context, c *poster.Canvas, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.EmbedFonts {
			svgOpts = append(svgOpts, sink.WithEmbeddedFonts())
		}
		data = sink.RenderSVG(c, svgOpts...)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 1
		}
		data, err = sink.RenderPNG(c, sink.WithScale(scale))
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, c)
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.Points {
			jsonOpts = append(jsonOpts, sink.WithPoints())
		}
		data, err = sink.RenderJSON(c, jsonOpts...)
	default:
		return nil, ValidateFormat(format)
	}
	if perrors.Is(err, perrors.ErrCodeUnsupported) {
		return nil, err
	}
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return data, nil
}
