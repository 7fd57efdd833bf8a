package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/blobposter/pkg/buildinfo"
	"github.com/matzehuels/blobposter/pkg/cache"
	perrors "github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/pipeline"
	"github.com/matzehuels/blobposter/pkg/poster"
	"github.com/matzehuels/blobposter/pkg/render/sink"
)

// previewSize bounds the thumbnail served to the form.
const previewSize = 480

// maxRequestBody limits POST /api/posters bodies.
const maxRequestBody = 64 << 10

// warningHeader carries non-fatal problems with a request, such as an
// ignored seed.
const warningHeader = "X-Poster-Warning"

func (s *Server) handlePoster(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if format == "" {
		format = r.URL.Query().Get("format")
	}
	if format == "" {
		format = pipeline.FormatPNG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:  q.config,
		Preset:  q.preset,
		Formats: []string{format},
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if q.warning != "" {
		w.Header().Set(warningHeader, q.warning)
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportName(s.now(), format)))
	if !result.Seeded {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.Write(result.Artifacts[format])
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	cfg := q.config
	if q.preset != "" {
		if err := poster.ApplyPreset(&cfg, q.preset); err != nil {
			writeError(w, err)
			return
		}
	}

	c, err := s.runner.Compose(r.Context(), cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	// Rasterise near the target size, then fit exactly.
	pw, ph := c.PixelSize()
	scale := min(1, 2*previewSize/float64(max(pw, ph)))
	img, err := sink.RenderImage(c, sink.WithScale(scale))
	if err != nil {
		writeError(w, perrors.Wrap(perrors.ErrCodeRenderFailed, err, "render preview"))
		return
	}
	thumb := imaging.Fit(img, previewSize, previewSize, imaging.Lanczos)

	if q.warning != "" {
		w.Header().Set(warningHeader, q.warning)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if err := imaging.Encode(w, thumb, imaging.PNG); err != nil {
		s.logger.Warn("write preview", "error", err)
	}
}

// exportRequest is the body of POST /api/posters. Omitted config fields
// keep their defaults.
type exportRequest struct {
	Config  poster.Config `json:"config"`
	Preset  string        `json:"preset,omitempty"`
	Formats []string      `json:"formats,omitempty"`
}

type exportResponse struct {
	ID        string            `json:"id"`
	Seed      *int64            `json:"seed,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
	Links     map[string]string `json:"links"`
}

func (s *Server) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	req := exportRequest{Config: poster.DefaultConfig()}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Config:  req.Config,
		Preset:  req.Preset,
		Formats: req.Formats,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	id := s.newID()
	resp := exportResponse{
		ID:        id,
		Seed:      result.Config.Seed,
		ExpiresAt: s.now().Add(cache.TTLExport).UTC(),
		Links:     make(map[string]string, len(result.Artifacts)),
	}
	for format, data := range result.Artifacts {
		if err := s.exports.Set(r.Context(), s.keyer.ExportKey(id+"."+format), data, cache.TTLExport); err != nil {
			writeError(w, perrors.Wrap(perrors.ErrCodeInternal, err, "store export"))
			return
		}
		resp.Links[format] = fmt.Sprintf("/api/posters/%s.%s", id, format)
	}

	s.logger.Info("export stored", "id", id, "formats", len(resp.Links))
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	id, format := chi.URLParam(r, "id"), chi.URLParam(r, "format")
	if err := uuidParam(id); err != nil {
		writeError(w, err)
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}

	data, ok, err := s.exports.Get(r.Context(), s.keyer.ExportKey(id+"."+format))
	if err != nil {
		writeError(w, perrors.Wrap(perrors.ErrCodeInternal, err, "load export"))
		return
	}
	if !ok {
		writeError(w, errNotFound("export %s.%s not found or expired", id, format))
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportName(s.now(), format)))
	w.Write(data)
}

type presetJSON struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Layers      int     `json:"layers,omitempty"`
	WobbleMin   float64 `json:"wobble_min,omitempty"`
	WobbleMax   float64 `json:"wobble_max,omitempty"`
	Palette     string  `json:"palette,omitempty"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	out := make([]presetJSON, len(poster.Presets))
	for i, p := range poster.Presets {
		out[i] = presetJSON(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

// exportName is the download file name, poster_<timestamp>.<ext>.
func exportName(now time.Time, format string) string {
	return fmt.Sprintf("poster_%s.%s", now.Format("20060102_150405"), format)
}

func uuidParam(id string) error {
	if len(id) != 36 || strings.Count(id, "-") != 4 {
		return errNotFound("export %q not found", id)
	}
	return nil
}

func errNotFound(format string, args ...any) error {
	return perrors.New(perrors.ErrCodeNotFound, format, args...)
}

type errorResponse struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

// writeError maps err to a status code and writes it as JSON. Uncoded
// errors are reported as INTERNAL_ERROR.
func writeError(w http.ResponseWriter, err error) {
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	writeJSON(w, perrors.HTTPStatus(err), errorResponse{Code: code, Message: perrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
