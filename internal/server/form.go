package server

import (
	"html/template"
	"net/http"

	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/pipeline"
	"github.com/matzehuels/blobposter/pkg/poster"
)

var formTemplate = template.Must(template.New("form").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>blobposter</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; display: flex; gap: 2rem; color: #222; }
  form { display: grid; grid-template-columns: 9rem 12rem; gap: .4rem .8rem; align-content: start; }
  label { align-self: center; color: #555; }
  h1 { grid-column: 1 / -1; margin: 0 0 .5rem; font-size: 1.3rem; }
  .actions { grid-column: 1 / -1; display: flex; gap: .5rem; margin-top: .8rem; }
  img { max-height: 90vh; box-shadow: 0 2px 12px rgba(0,0,0,.15); }
</style>
</head>
<body>
<form method="get" action="/poster" target="_blank">
  <h1>Generative Poster</h1>
  <label for="preset">Preset</label>
  <select id="preset" name="preset">{{range .Presets}}<option value="{{.Name}}">{{.Name}}</option>{{end}}</select>
  <label for="seed">Seed</label><input id="seed" name="seed" placeholder="random">
  <label for="layers">Layers</label><input id="layers" name="layers" type="number" min="0" max="500" value="{{.Config.Layers}}">
  <label for="wobble_min">Wobble min</label><input id="wobble_min" name="wobble_min" type="number" step="0.01" value="{{.Config.WobbleMin}}">
  <label for="wobble_max">Wobble max</label><input id="wobble_max" name="wobble_max" type="number" step="0.01" value="{{.Config.WobbleMax}}">
  <label for="wobble_mode">Wobble mode</label>
  <select id="wobble_mode" name="wobble_mode"><option>relative</option><option>absolute</option></select>
  <label for="radius_min">Radius min</label><input id="radius_min" name="radius_min" type="number" step="0.01" value="{{.Config.RadiusMin}}">
  <label for="radius_max">Radius max</label><input id="radius_max" name="radius_max" type="number" step="0.01" value="{{.Config.RadiusMax}}">
  <label for="alpha_min">Alpha min</label><input id="alpha_min" name="alpha_min" type="number" step="0.01" min="0" max="1" value="{{.Config.AlphaMin}}">
  <label for="alpha_max">Alpha max</label><input id="alpha_max" name="alpha_max" type="number" step="0.01" min="0" max="1" value="{{.Config.AlphaMax}}">
  <label for="points">Points</label><input id="points" name="points" type="number" min="3" value="{{.Config.Points}}">
  <label for="palette">Palette</label>
  <select id="palette" name="palette">{{range .Palettes}}<option>{{.}}</option>{{end}}</select>
  <label for="palette_source">Source</label>
  <select id="palette_source" name="palette_source"><option>sampled</option><option>swatch</option></select>
  <label for="palette_size">Colours</label><input id="palette_size" name="palette_size" type="number" min="1" max="64" value="{{.Config.PaletteSize}}">
  <label for="base_hue">Mono hue</label><input id="base_hue" name="base_hue" type="number" step="0.01" min="0" max="1" value="{{.Config.BaseHue}}">
  <label for="background">Background</label><input id="background" name="background" list="backgrounds" value="{{.Config.Background}}">
  <datalist id="backgrounds">{{range .Backgrounds}}<option value="{{.}}">{{end}}</datalist>
  <label for="width">Width (in)</label><input id="width" name="width" type="number" step="0.1" value="{{.Config.Width}}">
  <label for="height">Height (in)</label><input id="height" name="height" type="number" step="0.1" value="{{.Config.Height}}">
  <label for="dpi">DPI</label><input id="dpi" name="dpi" type="number" value="{{.Config.DPI}}">
  <label for="title">Title</label><input id="title" name="title" value="{{.Config.Title}}">
  <label for="subtitle">Subtitle</label><input id="subtitle" name="subtitle" value="{{.Config.Subtitle}}">
  <label for="tag_palette">Tag palette</label><input id="tag_palette" name="tag_palette" type="checkbox">
  <label for="format">Format</label>
  <select id="format" name="format">{{range .Formats}}<option>{{.}}</option>{{end}}</select>
  <div class="actions">
    <button type="submit" formaction="/preview.png" formtarget="preview">Preview</button>
    <button type="submit">Download</button>
  </div>
</form>
<iframe name="preview" title="preview" style="border:0" width="500" height="500" src="/preview.png"></iframe>
</body>
</html>
`))

type formData struct {
	Config      poster.Config
	Presets     []poster.Preset
	Palettes    []string
	Backgrounds []string
	Formats     []string
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	modes := make([]string, len(palette.Modes))
	for i, m := range palette.Modes {
		modes[i] = m.String()
	}
	data := formData{
		Config:      poster.DefaultConfig(),
		Presets:     poster.Presets,
		Palettes:    modes,
		Backgrounds: append(append([]string{}, palette.BackgroundNames...), "gray:0.5"),
		Formats:     pipeline.Formats,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		s.logger.Warn("render form", "error", err)
	}
}
