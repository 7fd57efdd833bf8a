package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blobposter/pkg/cache"
	"github.com/matzehuels/blobposter/pkg/pipeline"
)

// small keeps renders fast.
const small = "width=2&height=2&dpi=36&points=40"

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(cache.NewMemoryCache(), nil, logger), cache.NewMemoryCache(), logger)
	s.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	s.newID = func() string { return "00000000-0000-4000-8000-000000000001" }
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func TestForm(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	for _, want := range []string{`name="layers"`, `value="noisetouch"`, "Generative Poster"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("form missing %q", want)
		}
	}
}

func TestPosterDownload(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/poster.svg?seed=42&"+small)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "attachment; filename=poster_20240506_070809.svg" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !bytes.HasPrefix(body, []byte("<svg")) {
		t.Errorf("body is not SVG: %.40s", body)
	}

	_, again := get(t, ts.URL+"/poster.svg?seed=42&"+small)
	if !bytes.Equal(body, again) {
		t.Error("seeded downloads differ")
	}
}

func TestPosterFormatQuery(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/poster?format=png&seed=1&"+small)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if _, err := png.Decode(bytes.NewReader(body)); err != nil {
		t.Errorf("png.Decode: %v", err)
	}
}

func TestPosterInvalidSeedWarns(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/poster.json?seed=abc&"+small)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if w := resp.Header.Get(warningHeader); !strings.Contains(w, "abc") {
		t.Errorf("%s = %q", warningHeader, w)
	}
	var scene map[string]any
	if err := json.Unmarshal(body, &scene); err != nil {
		t.Fatal(err)
	}
	if _, ok := scene["seed"]; ok {
		t.Error("ignored seed should not appear in the scene")
	}
}

func TestPosterErrors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"bad format", "/poster.gif", http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad number", "/poster.svg?layers=many", http.StatusBadRequest, "INVALID_INPUT"},
		{"out of range", "/poster.svg?alpha_max=2&" + small, http.StatusBadRequest, "INVALID_RANGE"},
		{"bad palette", "/poster.svg?palette=neon&" + small, http.StatusBadRequest, "INVALID_PALETTE"},
		{"bad preset", "/poster.svg?preset=loud&" + small, http.StatusBadRequest, "INVALID_PRESET"},
		{"no route", "/nope", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			var e errorResponse
			if err := json.Unmarshal(body, &e); err != nil {
				t.Fatalf("error body: %v", err)
			}
			if string(e.Code) != tt.code {
				t.Errorf("code = %s, want %s", e.Code, tt.code)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	_, ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/preview.png?seed=3&width=4&height=6&dpi=200")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dy() != previewSize || b.Dx() != previewSize*4/6 {
		t.Errorf("preview size = %dx%d", b.Dx(), b.Dy())
	}
}

func TestExportHandoff(t *testing.T) {
	_, ts := newTestServer(t)

	reqBody := `{"config": {"layers": 3, "points": 30, "width": 2, "height": 2, "dpi": 36, "seed": 9}, "formats": ["svg", "json"]}`
	resp, err := http.Post(ts.URL+"/api/posters", "application/json", strings.NewReader(reqBody))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d: %s", resp.StatusCode, b)
	}

	var out exportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.ID != "00000000-0000-4000-8000-000000000001" {
		t.Errorf("ID = %q", out.ID)
	}
	if out.Seed == nil || *out.Seed != 9 {
		t.Errorf("Seed = %v", out.Seed)
	}
	if want := time.Date(2024, 5, 6, 7, 23, 9, 0, time.UTC); !out.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", out.ExpiresAt, want)
	}

	svgResp, svg := get(t, ts.URL+out.Links["svg"])
	if svgResp.StatusCode != http.StatusOK || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg export: status %d, body %.40s", svgResp.StatusCode, svg)
	}

	missing, _ := get(t, ts.URL+"/api/posters/"+out.ID+".png")
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("unrequested format status = %d, want 404", missing.StatusCode)
	}
	bogus, _ := get(t, ts.URL+"/api/posters/not-a-uuid.svg")
	if bogus.StatusCode != http.StatusNotFound {
		t.Errorf("bogus id status = %d, want 404", bogus.StatusCode)
	}
}

func TestExportRejectsBadBody(t *testing.T) {
	_, ts := newTestServer(t)
	for _, body := range []string{`{`, `{"colour": "red"}`, `{"config": {"seed": "abc"}}`} {
		resp, err := http.Post(ts.URL+"/api/posters", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestPresetsAndHealth(t *testing.T) {
	_, ts := newTestServer(t)

	_, body := get(t, ts.URL+"/api/presets")
	var presets []presetJSON
	if err := json.Unmarshal(body, &presets); err != nil {
		t.Fatal(err)
	}
	if len(presets) != 4 || presets[1].Name != "minimal" || presets[1].Layers != 5 {
		t.Errorf("presets = %+v", presets)
	}

	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("healthz: %d %s", resp.StatusCode, body)
	}
}

func TestParseQuery(t *testing.T) {
	q, err := parseQuery(url.Values{
		"layers":      {"3"},
		"title":       {"  Hello "},
		"tag_palette": {"on"},
		"seed":        {"17"},
		"preset":      {"vivid"},
		"unknown":     {"x"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.config.Layers != 3 || q.config.Title != "Hello" || !q.config.TagPalette {
		t.Errorf("config = %+v", q.config)
	}
	if q.config.Seed == nil || *q.config.Seed != 17 || q.preset != "vivid" || q.warning != "" {
		t.Errorf("seed %v preset %q warning %q", q.config.Seed, q.preset, q.warning)
	}
}
