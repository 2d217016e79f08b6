package dashboard

const pageHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Inter, Lato, Arial, sans-serif; background: #f8fafc; color: #1e293b; margin: 0 auto; max-width: 1200px; padding: 0 24px 48px; }
    h1 { color: #2563eb; font-weight: 600; margin: 32px 0 8px; }
    h2 { font-size: 1.2em; margin: 28px 0 8px; }
    .slider { background: #fff; border-radius: 12px; box-shadow: 0 2px 12px #e0e7ef; padding: 16px 24px; }
    .slider input[type=range] { width: 100%; }
    .marks { display: flex; justify-content: space-between; font-size: 0.8em; color: #64748b; }
    .graph { background: #fff; border-radius: 12px; box-shadow: 0 2px 12px #e0e7ef; padding: 8px; overflow-x: auto; }
    .table-wrap { overflow-x: auto; background: #fff; border-radius: 12px; box-shadow: 0 2px 12px #e0e7ef; }
    table { border-collapse: collapse; width: 100%; font-size: 0.95em; }
    th, td { padding: 6px 10px; border-bottom: 1px solid #e2e8f0; text-align: right; white-space: nowrap; }
    th button { background: none; border: none; font-weight: 600; cursor: pointer; }
    th input { width: 100%; box-sizing: border-box; font-size: 0.85em; }
    .pager { padding: 8px 10px; display: flex; gap: 12px; align-items: center; }
    .error { color: #dc2626; }
  </style>
</head>
<body>
{{template "component" (node .Root .)}}
<script>
const bindings = {{.Bindings}};
const state = { page: 0, pageSize: {{.Table.PageSize}}, sort: "", desc: false, filters: {} };

async function dispatch(binding, inputs) {
  const resp = await fetch("/_update", {
    method: "POST",
    headers: { "Content-Type": "application/json" },
    body: JSON.stringify({ binding: binding, inputs: inputs }),
  });
  const body = await resp.json();
  if (!resp.ok) { throw new Error(body.error || resp.statusText); }
  return body.outputs;
}

function showError(err) {
  document.getElementById("status").textContent = String(err);
}

async function onYearRange() {
  const lo = document.getElementById("year-from");
  const hi = document.getElementById("year-to");
  let from = Number(lo.value), to = Number(hi.value);
  if (from > to) { [from, to] = [to, from]; }
  document.getElementById("year-label").textContent = from + " - " + to;
  document.getElementById("export-link").href = "/export.xlsx?from=" + from + "&to=" + to;
  try {
    const outputs = await dispatch("update-charts", [[from, to]]);
    const update = bindings.find(b => b.id === "update-charts");
    // Replace every chart only after the whole response arrived.
    for (const dep of update.outputs) {
      document.getElementById(dep.id).innerHTML = outputs[dep.id + "." + dep.property].svg;
    }
    document.getElementById("status").textContent = "";
  } catch (err) { showError(err); }
}

async function onPageSize(ev) {
  try {
    const outputs = await dispatch("update-page-size", [Number(ev.target.value)]);
    state.pageSize = outputs["population-table.page_size"];
    state.page = 0;
    await loadTable();
  } catch (err) { showError(err); }
}

async function loadTable() {
  const q = new URLSearchParams({ page: state.page, page_size: state.pageSize });
  if (state.sort) { q.set("sort", state.sort); q.set("desc", state.desc); }
  for (const [col, expr] of Object.entries(state.filters)) {
    if (expr) { q.set("filter[" + col + "]", expr); }
  }
  const resp = await fetch("/api/table?" + q.toString());
  const body = await resp.json();
  if (!resp.ok) { showError(body.error || resp.statusText); return; }
  const tbody = document.querySelector("#population-table tbody");
  tbody.replaceChildren(...body.rows.map(row => {
    const tr = document.createElement("tr");
    for (const cell of row) {
      const td = document.createElement("td");
      td.textContent = cell;
      tr.appendChild(td);
    }
    return tr;
  }));
  state.page = body.page;
  document.getElementById("pager-label").textContent =
    "Page " + (body.page + 1) + " of " + body.pages + " (" + body.total + " rows)";
  document.getElementById("status").textContent = "";
}

document.getElementById("year-from").addEventListener("change", onYearRange);
document.getElementById("year-to").addEventListener("change", onYearRange);
document.getElementById("num-rows-dropdown").addEventListener("change", onPageSize);
document.querySelectorAll("#population-table th button").forEach(btn => btn.addEventListener("click", () => {
  const col = btn.dataset.col;
  state.desc = state.sort === col ? !state.desc : false;
  state.sort = col;
  loadTable();
}));
document.querySelectorAll("#population-table th input").forEach(inp => inp.addEventListener("change", () => {
  state.filters[inp.dataset.col] = inp.value;
  state.page = 0;
  loadTable();
}));
document.getElementById("page-prev").addEventListener("click", () => { if (state.page > 0) { state.page--; loadTable(); } });
document.getElementById("page-next").addEventListener("click", () => { state.page++; loadTable(); });
</script>
</body>
</html>

{{define "component"}}{{$c := .C}}
{{- if eq $c.Kind "div"}}<div{{if $c.ID}} id="{{$c.ID}}"{{end}}>{{range $c.Children}}{{template "component" (node . $.Page)}}{{end}}</div>
{{- else if eq $c.Kind "h1"}}<h1>{{$c.Text}}</h1>
{{- else if eq $c.Kind "h2"}}<h2>{{$c.Text}}</h2>
{{- else if eq $c.Kind "p"}}<p>{{$c.Text}}</p>
{{- else if eq $c.Kind "range-slider"}}{{with $c.Slider}}
<div class="slider" id="{{$c.ID}}" data-step="{{.Step}}" data-marks="{{join .Marks}}">
  <div>Years: <strong id="year-label">{{.From}} - {{.To}}</strong> <span id="status" class="error"></span></div>
  <input type="range" id="year-from" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.From}}">
  <input type="range" id="year-to" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.To}}">
  <div class="marks">{{range .Marks}}<span>{{.}}</span>{{end}}</div>
</div>{{end}}
{{- else if eq $c.Kind "graph"}}<div class="graph" id="{{$c.ID}}">{{svg $.Page $c.ID}}</div>
{{- else if eq $c.Kind "dropdown"}}{{with $c.Dropdown}}{{$value := .Value}}
<select id="{{$c.ID}}"{{if not .Clearable}} required{{end}}>
  {{range .Options}}<option value="{{.}}"{{if eq . $value}} selected{{end}}>{{.}}</option>{{end}}
</select>{{end}}
{{- else if eq $c.Kind "data-table"}}{{with $c.Table}}
<div class="table-wrap" style="overflow-x: {{.OverflowX}}">
<table id="{{$c.ID}}" data-page-size="{{.PageSize}}" data-filter-action="{{.FilterAction}}" data-sort-action="{{.SortAction}}">
  <thead>
    <tr>{{range .Columns}}<th><button type="button" data-col="{{.}}">{{.}}</button></th>{{end}}</tr>
    <tr>{{range .Columns}}<th><input type="text" data-col="{{.}}" placeholder="filter data..."></th>{{end}}</tr>
  </thead>
  <tbody>{{range $.Page.Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
</table>
<div class="pager">
  <button type="button" id="page-prev">&lsaquo;</button>
  <span id="pager-label">Page {{inc $.Page.Table.Page}} of {{$.Page.Table.Pages}} ({{$.Page.Table.Total}} rows)</span>
  <button type="button" id="page-next">&rsaquo;</button>
  <a id="export-link" href="/export.xlsx">Download XLSX</a>
</div>
</div>{{end}}
{{- end}}
{{- end}}
`
