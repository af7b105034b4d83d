package dashboard

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
)

// Server renders the dashboard pages. The CSV is re-read on every request
// so a run finishing in another terminal shows up on refresh.
type Server struct {
	csvPath string
	tmpl    *template.Template
}

func NewServer(csvPath string) *Server {
	return &Server{
		csvPath: csvPath,
		tmpl:    template.Must(template.New("dashboard").Parse(pageTemplate)),
	}
}

// Handler returns the route table for the dashboard.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/job", s.handleJob)
	return mux
}

type indexData struct {
	Err       string
	Stats     Stats
	Rows      []Row
	Top       []Row
	Companies []CompanySimilarity
	MinSim    float64
	Decision  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := indexData{}
	rows, err := Load(s.csvPath)
	if err != nil {
		data.Err = "No results file found yet. Run the agent first to produce " + s.csvPath + "."
		s.render(w, "index", data)
		return
	}

	if v := r.URL.Query().Get("min_sim"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			data.MinSim = f
		}
	}
	data.Decision = r.URL.Query().Get("decision")

	data.Stats = Summarize(rows)
	//every downstream view works off the filtered rows
	data.Rows = Filter(rows, data.MinSim, data.Decision)
	data.Top = TopMatches(data.Rows, 5)
	data.Companies = ByCompany(data.Rows)
	s.render(w, "index", data)
}

type jobData struct {
	Row       Row
	HasLetter bool
}

func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	rows, err := Load(s.csvPath)
	if err != nil {
		http.Error(w, "no results file", http.StatusNotFound)
		return
	}
	row, ok := FindByTitle(rows, title)
	if !ok {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	s.render(w, "job", jobData{Row: row, HasLetter: HasRealLetter(row)})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("⚠️ Template error: %v", err)
	}
}

const pageTemplate = `
{{define "index"}}<!doctype html>
<html><head><title>NCS Job Results</title>
<style>
body{font-family:sans-serif;margin:2rem;max-width:70rem}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:4px 8px;text-align:left}
.bar{background:#4a90d9;display:inline-block;height:0.8rem}
.stats span{margin-right:2rem}
</style></head><body>
<h1>📊 NCS Job Scraper Dashboard</h1>
{{if .Err}}<p>{{.Err}}</p>{{else}}
<div class="stats">
<span>Total: <b>{{.Stats.Total}}</b></span>
<span>To apply: <b>{{.Stats.ToApply}}</b></span>
<span>Skipped: <b>{{.Stats.Skipped}}</b></span>
<span>Pending: <b>{{.Stats.Pending}}</b></span>
</div>
<form method="get">
Min similarity: <input name="min_sim" value="{{.MinSim}}" size="5">
Decision: <select name="decision">
<option value="" {{if eq .Decision ""}}selected{{end}}>all</option>
<option value="true" {{if eq .Decision "true"}}selected{{end}}>to apply</option>
<option value="false" {{if eq .Decision "false"}}selected{{end}}>skipped</option>
</select>
<button>Filter</button>
</form>
<h2>Top matches</h2>
<ol>{{range .Top}}<li><a href="/job?title={{.Title}}">{{if .Title}}{{.Title}}{{else}}No Title{{end}}</a> — {{printf "%.3f" .Similarity}}</li>{{end}}</ol>
<h2>Similarity by company</h2>
<table>{{range .Companies}}<tr><td>{{.Company}}</td><td><span class="bar" style="width:{{.Percent}}%"></span> {{printf "%.3f" .Similarity}}</td></tr>{{end}}</table>
<h2>Results</h2>
<table>
<tr><th>Title</th><th>Company</th><th>Similarity</th><th>Decision</th><th>Last date</th><th>Location</th></tr>
{{range .Rows}}<tr>
<td><a href="/job?title={{.Title}}">{{if .Title}}{{.Title}}{{else}}No Title{{end}}</a></td>
<td>{{if .Company}}{{.Company}}{{else}}Unknown{{end}}</td>
<td>{{printf "%.3f" .Similarity}}</td>
<td>{{.ApplyDecision}}</td>
<td>{{.LastDate}}</td>
<td>{{.Location}}</td>
</tr>{{end}}
</table>
{{end}}
</body></html>{{end}}

{{define "job"}}<!doctype html>
<html><head><title>{{.Row.Title}}</title>
<style>body{font-family:sans-serif;margin:2rem;max-width:50rem}pre{white-space:pre-wrap;background:#f5f5f5;padding:1rem}</style>
</head><body>
<p><a href="/">← back</a></p>
<h1>{{if .Row.Title}}{{.Row.Title}}{{else}}No Title{{end}}</h1>
<p><b>Company:</b> {{if .Row.Company}}{{.Row.Company}}{{else}}Unknown{{end}}</p>
<p><b>Similarity:</b> {{printf "%.3f" .Row.Similarity}}</p>
<p><b>Decision:</b> {{.Row.ApplyDecision}} | <b>Applied:</b> {{.Row.Applied}}</p>
<p><b>Last date:</b> {{.Row.LastDate}} | <b>Location:</b> {{.Row.Location}} | <b>Salary:</b> {{.Row.Salary}}</p>
<p><b>Skills:</b> {{.Row.Skills}}</p>
{{if .Row.URL}}<p><a href="{{.Row.URL}}">Open listing</a></p>{{end}}
<h2>Description</h2>
<pre>{{.Row.Description}}</pre>
<h2>Cover letter</h2>
{{if .HasLetter}}<pre>{{.Row.CoverLetter}}</pre>{{else}}<p><i>{{if .Row.CoverLetter}}{{.Row.CoverLetter}}{{else}}No cover letter generated.{{end}}</i></p>{{end}}
</body></html>{{end}}
`
