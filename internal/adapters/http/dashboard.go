package http

import "net/http"

// GetDashboard serves the embedded single-page dashboard.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(dashboardHTML))
}

// dashboardHTML is the browser UI: an area multi-select driving a spline
// line chart with extreme-point markers and an area-by-year heatmap, both
// fed from the JSON API.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>carbondash</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js" charset="utf-8"></script>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f8f9fa; margin: 0; padding: 1.5rem; }
  h1 { color: #2c3e50; font-size: 1.6rem; }
  .controls { margin-bottom: 1rem; max-width: 480px; }
  .controls label { font-weight: 600; display: block; margin-bottom: .25rem; }
  .controls select { width: 100%; min-height: 8rem; padding: .25rem; border: 1px solid #ced4da; border-radius: .25rem; }
  .charts { display: flex; flex-wrap: wrap; gap: 1rem; }
  .card { background: #fff; border-radius: .5rem; box-shadow: 0 1px 3px rgba(0,0,0,.12); padding: 1rem; flex: 1 1 480px; }
  .card h2 { font-size: 1rem; text-align: center; color: #495057; margin-top: 0; }
  .error { color: #c0392b; margin: .5rem 0; }
</style>
</head>
<body>
<h1 id="title">carbondash</h1>
<div class="controls">
  <label for="areas">Select Countries:</label>
  <select id="areas" multiple></select>
  <div id="error" class="error"></div>
</div>
<div class="charts">
  <div class="card"><div id="line" style="height:500px"></div></div>
  <div class="card"><h2>Country-Year</h2><div id="heatmap" style="height:500px"></div></div>
</div>
<script>
const DEFAULT_SELECTION = ["Germany", "Cyprus", "Portugal"];
let metricLabel = "";

async function getJSON(url) {
  const resp = await fetch(url);
  const body = await resp.json();
  if (!resp.ok) throw new Error(body.error || resp.statusText);
  return body;
}

function selectedAreas() {
  return Array.from(document.getElementById("areas").selectedOptions).map(o => o.value);
}

function emptyFigure(target, message) {
  Plotly.newPlot(target, [], { title: message, template: "plotly_white" });
}

async function refresh() {
  const areas = selectedAreas();
  document.getElementById("error").textContent = "";
  if (areas.length === 0) {
    emptyFigure("line", "Please select at least one country");
    emptyFigure("heatmap", "No data for selected countries.");
    return;
  }
  const q = encodeURIComponent(areas.join(","));
  try {
    const [series, hm] = await Promise.all([
      getJSON("/api/v1/series?areas=" + q),
      getJSON("/api/v1/heatmap?areas=" + q),
    ]);
    drawLine(series);
    drawHeatmap(hm);
  } catch (err) {
    document.getElementById("error").textContent = err.message;
  }
}

function drawLine(series) {
  const traces = [];
  for (const s of series) {
    traces.push({
      x: s.points.map(p => p.date),
      y: s.points.map(p => p.value),
      mode: "lines",
      name: s.area,
      line: { shape: "spline" },
    });
    for (const [point, color] of [[s.min, "red"], [s.max, "green"]]) {
      if (!point) continue;
      traces.push({
        x: [point.date],
        y: [point.value],
        mode: "markers",
        marker: { color: color, size: 12, symbol: "circle" },
        showlegend: false,
      });
    }
  }
  Plotly.newPlot("line", traces, {
    title: { text: metricLabel + " by Country Over Time", x: 0.5 },
    legend: { title: { text: "Country" } },
    template: "plotly_white",
  });
}

function drawHeatmap(hm) {
  Plotly.newPlot("heatmap", [{
    z: hm.values,
    x: hm.years,
    y: hm.areas,
    type: "heatmap",
    colorscale: "YlGnBu",
    colorbar: { title: "Average Value" },
  }], {
    xaxis: { title: "Year" },
    yaxis: { title: "Country" },
    template: "plotly_white",
  });
}

async function init() {
  const [summary, areas] = await Promise.all([
    getJSON("/api/v1/summary"),
    getJSON("/api/v1/areas"),
  ]);
  metricLabel = summary.metric.label;
  document.getElementById("title").textContent = summary.title;
  document.title = summary.title;

  const select = document.getElementById("areas");
  for (const area of areas) {
    const opt = document.createElement("option");
    opt.value = opt.textContent = area;
    opt.selected = DEFAULT_SELECTION.includes(area);
    select.appendChild(opt);
  }
  if (select.selectedOptions.length === 0 && select.options.length > 0) {
    select.options[0].selected = true;
  }
  select.addEventListener("change", refresh);

  // Re-render when the server reloads its dataset.
  new EventSource("/events").onmessage = () => refresh();

  refresh();
}

init();
</script>
</body>
</html>
`
