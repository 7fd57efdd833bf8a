package cli

import (
	"testing"

	"github.com/matzehuels/blobposter/pkg/cache"
)

func TestServerURL(t *testing.T) {
	tests := map[string]string{
		":8080":          "http://localhost:8080/",
		"127.0.0.1:9000": "http://127.0.0.1:9000/",
	}
	for addr, want := range tests {
		if got := serverURL(addr); got != want {
			t.Errorf("serverURL(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestServeKeyer(t *testing.T) {
	plain := serveKeyer("")
	if got, want := plain.ExportKey("abc.svg"), cache.NewDefaultKeyer().ExportKey("abc.svg"); got != want {
		t.Errorf("ExportKey without prefix = %q, want %q", got, want)
	}

	scoped := serveKeyer("staging:")
	if got := scoped.ExportKey("abc.svg"); got != "staging:"+plain.ExportKey("abc.svg") {
		t.Errorf("ExportKey = %q, want staging: prefix", got)
	}
	opts := cache.ArtifactKeyOpts{Format: "png", Version: "v1"}
	if got := scoped.ArtifactKey("h", opts); got != "staging:"+plain.ArtifactKey("h", opts) {
		t.Errorf("ArtifactKey = %q, want staging: prefix", got)
	}
}
