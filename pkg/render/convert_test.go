package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	perrors "github.com/matzehuels/blobposter/pkg/errors"
)

func TestToPDFMissingBinary(t *testing.T) {
	orig := rsvgBinary
	rsvgBinary = "rsvg-convert-does-not-exist"
	defer func() { rsvgBinary = orig }()

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if err == nil || !strings.Contains(err.Error(), "requires librsvg") {
		t.Errorf("ToPDF() error = %v, want install hint", err)
	}
	if !perrors.Is(err, perrors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() code = %q, want %q", perrors.GetCode(err), perrors.ErrCodeUnsupported)
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`
	pdf, err := ToPDF(context.Background(), []byte(svg))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}
