// Package render holds format conversion shared by the poster sinks.
//
// Vector output is produced natively as SVG by
// [github.com/matzehuels/blobposter/pkg/render/sink]. PDF is derived from
// that SVG with librsvg's rsvg-convert, the same way every time, so PDF and
// SVG exports of one canvas always agree.
package render
