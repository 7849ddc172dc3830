package profiling

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Renderer turns a Profile into a standalone HTML document
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the built-in report template
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
		"f2":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"f4":  func(v float64) string { return fmt.Sprintf("%.4f", v) },
	}
	tmpl, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the full HTML document for a profile
func (r *Renderer) Render(profile *Profile) ([]byte, error) {
	data := struct {
		*Profile
		Overview template.HTML
	}{
		Profile:  profile,
		Overview: overviewHTML(profile),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// overviewHTML renders the report's markdown overview section
func overviewHTML(p *Profile) template.HTML {
	src := fmt.Sprintf(`%s

**%d** rows across **%d** columns; **%d** missing cells and **%d** duplicate rows.
Generated by the Server Log Analysis System on %s.`,
		p.Description, p.RowCount, p.ColumnCount, p.MissingCells, p.DuplicateRows,
		p.GeneratedAt.Format("2006-01-02 15:04:05"))

	mdParser := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	out := markdown.ToHTML([]byte(src), mdParser, renderer)
	return template.HTML(out)
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 1100px; color: #222; }
h1 { color: #1f77b4; }
h2 { color: #ff7f0e; margin-top: 2rem; border-bottom: 1px solid #ddd; padding-bottom: .3rem; }
table { border-collapse: collapse; width: 100%; margin: 1rem 0; font-size: .9rem; }
th, td { border: 1px solid #ddd; padding: .4rem .6rem; text-align: left; }
th { background: #f0f2f6; }
.num { text-align: right; }
.overview { background: #f0f2f6; padding: 1rem; border-radius: .5rem; }
.corr-pos { background: #d6e9f8; }
.corr-neg { background: #f8d6d6; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="overview">{{.Overview}}</div>

<h2>Column Information</h2>
<table>
<tr><th>Column</th><th>Type</th><th>Non-Null</th><th>Null</th><th>Unique</th></tr>
{{range .Columns}}
<tr><td>{{.Name}}</td><td>{{.Type}}</td><td class="num">{{.NonNull}}</td><td class="num">{{.NullCount}}</td><td class="num">{{.UniqueCount}}</td></tr>
{{end}}
</table>

<h2>Numeric Columns</h2>
<table>
<tr><th>Column</th><th>Mean</th><th>Std</th><th>Min</th><th>25%</th><th>Median</th><th>75%</th><th>Max</th><th>Skew</th><th>Kurtosis</th><th>Normal</th></tr>
{{range .Columns}}{{if .Numeric}}
<tr><td>{{.Name}}</td>
<td class="num">{{f2 .Numeric.Mean}}</td><td class="num">{{f2 .Numeric.StdDev}}</td>
<td class="num">{{f2 .Numeric.Min}}</td><td class="num">{{f2 .Numeric.Q25}}</td>
<td class="num">{{f2 .Numeric.Median}}</td><td class="num">{{f2 .Numeric.Q75}}</td>
<td class="num">{{f2 .Numeric.Max}}</td><td class="num">{{f2 .Numeric.Skewness}}</td>
<td class="num">{{f2 .Numeric.Kurtosis}}</td><td>{{if .Numeric.IsNormal}}yes{{else}}no{{end}} (p={{f4 .Numeric.NormalP}})</td></tr>
{{end}}{{end}}
</table>

<h2>Categorical Columns: Top Values</h2>
{{range .Columns}}{{if .Categorical}}
<h3>{{.Name}}</h3>
<table>
<tr><th>Value</th><th>Count</th><th>Share</th></tr>
{{range .Categorical.TopValues}}
<tr><td>{{.Value}}</td><td class="num">{{.Count}}</td><td class="num">{{pct .Share}}</td></tr>
{{end}}
</table>
{{end}}{{end}}

{{if .Correlations}}
<h2>Correlation Matrix</h2>
<table>
<tr><th></th>{{range .Correlations.Columns}}<th>{{.}}</th>{{end}}</tr>
{{$corr := .Correlations}}
{{range $i, $row := .Correlations.Values}}
<tr><th>{{index $corr.Columns $i}}</th>
{{range $row}}<td class="num {{if gt . 0.3}}corr-pos{{else if lt . -0.3}}corr-neg{{end}}">{{f2 .}}</td>{{end}}
</tr>
{{end}}
</table>
{{end}}

<h2>Sample Data (First 10 Rows)</h2>
<table>
<tr>{{range $c := .Columns}}<th>{{$c.Name}}</th>{{end}}</tr>
{{$cols := .Columns}}
{{range .SampleRows}}
<tr>{{$row := .}}{{range $cols}}<td>{{index $row .Name}}</td>{{end}}</tr>
{{end}}
</table>
</body>
</html>
`
