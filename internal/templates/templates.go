package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/csg33k/attrition-form/internal/domain"
)

// Pages and fragments are html/template definitions exposed as
// templ.Components so handlers render everything the same way.

var tmpl = template.Must(template.New("attrition").Funcs(template.FuncMap{
	"itoa": itoa,
}).Parse(`
{{define "page"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Employee Attrition Prediction</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<style>
  :root{--ink:#0d1117;--paper:#f5f0e8;--ledger:#e8e0cc;--accent:#c0392b;--accent2:#2c6e49;--muted:#6b5e4e;--rule:#b8a898;}
  *{box-sizing:border-box;}
  body{background:var(--paper);color:var(--ink);font-family:'IBM Plex Sans',sans-serif;min-height:100vh;margin:0;}
  .mono{font-family:'IBM Plex Mono',monospace;}
  .card{background:rgba(255,255,255,0.7);border:1px solid var(--ledger);border-left:4px solid var(--ink);}
  .field-label{font-family:'IBM Plex Mono',monospace;font-size:0.6rem;font-weight:600;letter-spacing:0.1em;text-transform:uppercase;color:var(--muted);display:block;margin-bottom:2px;}
  input,select{background:white;border:1px solid var(--rule);border-bottom:2px solid var(--ink);padding:6px 8px;font-family:'IBM Plex Mono',monospace;font-size:0.85rem;width:100%;outline:none;}
  input:focus,select:focus{border-bottom-color:var(--accent);}
  .btn{font-family:'IBM Plex Mono',monospace;font-weight:600;font-size:0.8rem;letter-spacing:0.08em;padding:8px 18px;border:2px solid var(--ink);cursor:pointer;text-transform:uppercase;}
  .btn-primary{background:var(--ink);color:white;}
  .btn-primary:hover{background:var(--accent);border-color:var(--accent);}
  .btn-danger{background:white;color:var(--accent);border-color:var(--accent);}
  .section-header{font-family:'IBM Plex Mono',monospace;font-size:0.7rem;font-weight:600;letter-spacing:0.18em;text-transform:uppercase;color:var(--muted);border-bottom:1px solid var(--rule);padding-bottom:4px;margin-bottom:16px;}
  .result-leave{color:var(--accent);}
  .result-stay{color:var(--accent2);}
  .htmx-indicator{opacity:0;transition:opacity 0.2s;}
  .htmx-request .htmx-indicator{opacity:1;}
</style>
<script>
  document.addEventListener("htmx:beforeSwap", function (evt) {
    var s = evt.detail.xhr.status;
    if (s === 422 || s === 502) { evt.detail.shouldSwap = true; evt.detail.isError = false; }
  });
  document.addEventListener("validationFailed", function (evt) { alert(evt.detail.value); });
</script>
</head>
<body>
<div style="max-width:1100px;margin:0 auto;padding:32px 24px;">
<h1 class="mono" style="font-size:1.5rem;font-weight:600;margin:0 0 24px;">Employee Attrition Prediction</h1>
{{template "content" .}}
</div>
</body>
</html>{{end}}

{{define "content"}}
<div style="display:grid;grid-template-columns:2fr 1fr;gap:32px;align-items:start;">
<div class="card" style="padding:24px;">
  <div class="section-header">Employee Attributes</div>
  <form id="PredictionForm" hx-post="/assess" hx-target="#Result" hx-swap="innerHTML" novalidate>
    <div style="display:grid;grid-template-columns:1fr 1fr 1fr;gap:12px;">
    {{range .Fields}}{{template "field" .}}{{end}}
    </div>
    <div style="margin-top:16px;display:flex;justify-content:flex-end;align-items:center;gap:12px;">
      <span class="htmx-indicator mono" style="font-size:0.7rem;">predicting…</span>
      <button id="PredictButton" type="submit" class="btn btn-primary">PREDICT →</button>
    </div>
  </form>
  <div id="Result" class="mono" style="margin-top:20px;min-height:1.5em;"></div>
</div>
<div>
  <div class="section-header">Recent Predictions</div>
  <div id="history" hx-get="/history" hx-trigger="predictionSaved from:body">
    {{template "history-items" .History}}
  </div>
</div>
</div>
{{end}}

{{define "field"}}
<div>
  <label class="field-label" for="{{.Name}}">{{.Label}}{{if .Required}} *{{end}}</label>
  {{if eq .Control "select"}}
  <select id="{{.Name}}" name="{{.Name}}"{{if .Required}} required{{end}}>
    <option value="">Select…</option>
    {{range .Options}}<option value="{{.}}">{{.}}</option>{{end}}
  </select>
  {{else if eq .Control "number"}}
  <input type="number" id="{{.Name}}" name="{{.Name}}" step="{{.Step}}" min="{{.Min}}"{{if .Required}} required{{end}}>
  {{else}}
  <input type="text" id="{{.Name}}" name="{{.Name}}"{{if .Required}} required{{end}}>
  {{end}}
</div>
{{end}}

{{define "errors"}}
<ul class="result-leave" style="margin:0;padding-left:18px;font-size:0.8rem;">
  {{range .}}<li>{{.}}</li>{{end}}
</ul>
{{end}}

{{define "outcome"}}
<div class="{{if .Leave}}result-leave{{else}}result-stay{{end}}" style="font-weight:600;">{{.Outcome}}</div>
{{if .ID}}<a href="/history/{{itoa .ID}}/pdf" style="font-size:0.7rem;color:var(--muted);">download report</a>{{end}}
{{end}}

{{define "transmission"}}
<div class="result-leave">{{.}}</div>
{{end}}

{{define "history-items"}}
{{if not .}}
<div class="mono" style="font-size:0.8rem;color:var(--muted);padding:16px;text-align:center;">No predictions yet.</div>
{{else}}
{{range .}}
<div class="card" id="prediction-{{itoa .ID}}" style="padding:12px 16px;margin-bottom:8px;">
  <div class="{{if .Leave}}result-leave{{else}}result-stay{{end}}" style="font-size:0.8rem;font-weight:600;">{{.Outcome}}</div>
  <div style="font-size:0.72rem;color:var(--muted);margin-top:2px;">{{.Created}}{{if .Probability}} · {{.Probability}}{{end}}</div>
  <div style="margin-top:6px;display:flex;gap:8px;">
    <a href="/history/{{itoa .ID}}/pdf" class="btn btn-primary" style="padding:4px 10px;font-size:0.65rem;text-decoration:none;">PDF</a>
    <button class="btn btn-danger" style="padding:4px 10px;font-size:0.65rem;"
      hx-delete="/history/{{itoa .ID}}" hx-target="#prediction-{{itoa .ID}}" hx-swap="outerHTML"
      hx-confirm="Delete this prediction?">DELETE</button>
  </div>
</div>
{{end}}
{{end}}
{{end}}
`))

type indexData struct {
	Fields  []FieldView
	History []HistoryItem
}

type outcomeData struct {
	ID      int64
	Leave   bool
	Outcome string
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, data)
	})
}

// Index renders the full form page.
func Index(specs []domain.FieldSpec, history []domain.PredictionRecord) templ.Component {
	return component("page", indexData{Fields: FieldViews(specs), History: HistoryItems(history)})
}

// Errors renders every validation message in collection order.
func Errors(msgs []string) templ.Component {
	return component("errors", msgs)
}

// Outcome renders the fixed outcome string. id is the stored prediction, or
// zero when the prediction was not stored.
func Outcome(p domain.Prediction, id int64) templ.Component {
	return component("outcome", outcomeData{ID: id, Leave: p.Leave, Outcome: p.Outcome()})
}

// TransmissionFailed renders the generic transmission failure message.
func TransmissionFailed() templ.Component {
	return component("transmission", domain.TransmissionMessage)
}

// History renders the recent-predictions list.
func History(list []domain.PredictionRecord) templ.Component {
	return component("history-items", HistoryItems(list))
}
