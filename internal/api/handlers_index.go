// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/render"
	"github.com/tomtom215/soundtrail/internal/selection"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Soundtrail</title>
</head>
<body>
<header>
  <select id="year">{{range .Years}}<option value="{{.}}">{{.}}</option>{{end}}</select>
  <input id="start" type="date"> <input id="end" type="date"> <button id="apply">Apply</button>
  <p id="summary" data-fallback="{{.Fallback}}">{{.Fallback}}</p>
</header>
<main>
{{range .Regions}}  <section class="region" id="region-{{.}}" data-region="{{.}}"></section>
{{end}}</main>
<script>
const api = "/api/v1";
function show(snap) {
  document.getElementById("summary").textContent = snap.summary;
  document.getElementById("start").value = snap.inputs.start || "";
  document.getElementById("end").value = snap.inputs.end || "";
  for (const f of snap.regions) {
    const el = document.getElementById("region-" + f.region);
    if (el) { el.innerHTML = f.html; el.dataset.state = f.state; }
  }
}
async function post(path, body) {
  const res = await fetch(api + path, {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)});
  const out = await res.json();
  if (out.status === "error") { alert(out.error.message); return null; }
  return out.data;
}
document.getElementById("year").onchange = e => post("/selection/year", {year: Number(e.target.value)});
document.getElementById("apply").onclick = async () => {
  const d = await post("/selection/range", {start: document.getElementById("start").value, end: document.getElementById("end").value});
  if (d) show(d.dashboard);
};
const proto = location.protocol === "https:" ? "wss://" : "ws://";
const ws = new WebSocket(proto + location.host + api + "/ws");
ws.onmessage = e => {
  const m = JSON.parse(e.data);
  if (m.type === "dashboard") show(m.data);
  if (m.type === "error") console.warn(m.data.code, m.data.message);
};
</script>
</body>
</html>
`))

type indexData struct {
	Years    []int
	Regions  []render.Region
	Fallback string
}

// Index serves the page shell. The regions are filled from the dashboard
// snapshot pushed over the WebSocket.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := indexData{Regions: render.Regions, Fallback: selection.FallbackLabel}
	if years, err := h.controller.Years(r.Context()); err == nil {
		data.Years = years
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Debug().Err(err).Msg("Failed to write index page")
	}
}
