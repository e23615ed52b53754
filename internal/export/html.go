package export

import (
	"html/template"
	"os"

	"socialscope/internal/normalize"
)

type htmlWriter struct{}

type htmlReport struct {
	Name          string
	ItemCount     int
	TotalViews    int64
	TotalLikes    int64
	TotalComments int64
	Records       []normalize.Record
}

func (htmlWriter) Write(dir, name string, records []normalize.Record) (string, error) {
	report := htmlReport{
		Name:      name,
		ItemCount: len(records),
		Records:   records,
	}
	for _, rec := range records {
		report.TotalViews += rec.Views
		report.TotalLikes += rec.Likes
		report.TotalComments += rec.CommentsCount
	}

	path := outputPath(dir, name, "html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, report); err != nil {
		return "", err
	}
	return path, nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Scraped Data: {{.Name}}</title>
<style>
:root { --bg: #111420; --card: #1e2132; --text: #f5f5f5; --primary: #9d4edd; --accent: #4285f4; --border: #333648; }
body { font-family: 'Segoe UI', Roboto, Arial, sans-serif; margin: 0; background: var(--bg); color: var(--text); }
.container { max-width: 1200px; margin: 20px auto; background: var(--card); border-radius: 12px; padding: 25px; }
h1 { color: var(--primary); text-align: center; }
.stats { display: flex; gap: 20px; margin-bottom: 30px; flex-wrap: wrap; }
.stat-block { flex: 1; padding: 20px; border-radius: 12px; text-align: center; border: 1px solid var(--primary); }
.stat-value { font-size: 28px; font-weight: bold; color: var(--accent); }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { padding: 12px; text-align: left; border-bottom: 1px solid var(--border); }
th { background: var(--primary); color: white; }
input { width: 100%; padding: 12px; font-size: 16px; margin-bottom: 20px; background: var(--bg); color: var(--text); border: 2px solid var(--border); border-radius: 8px; box-sizing: border-box; }
a { color: var(--accent); text-decoration: none; }
</style>
<script>
function searchTable() {
  const filter = document.getElementById("searchInput").value.toUpperCase();
  const rows = document.getElementById("itemTable").getElementsByTagName("tr");
  for (let i = 1; i < rows.length; i++) {
    rows[i].style.display = rows[i].textContent.toUpperCase().indexOf(filter) > -1 ? "" : "none";
  }
}
</script>
</head>
<body>
<div class="container">
<h1>{{.Name}}</h1>
<div class="stats">
  <div class="stat-block"><div class="stat-value">{{.ItemCount}}</div><div>Items</div></div>
  <div class="stat-block"><div class="stat-value">{{.TotalViews}}</div><div>Total Views</div></div>
  <div class="stat-block"><div class="stat-value">{{.TotalLikes}}</div><div>Total Likes</div></div>
  <div class="stat-block"><div class="stat-value">{{.TotalComments}}</div><div>Total Comments</div></div>
</div>
<input type="text" id="searchInput" onkeyup="searchTable()" placeholder="Search items...">
<table id="itemTable">
<thead><tr><th>Type</th><th>Title / Caption</th><th>Views</th><th>Likes</th><th>Comments</th><th>Published</th><th>Link</th></tr></thead>
<tbody>
{{range .Records}}<tr>
  <td>{{.ContentType}}</td>
  <td>{{if .Title}}{{.Title}}{{else}}{{.Caption}}{{end}}</td>
  <td>{{.Views}}</td>
  <td>{{.Likes}}</td>
  <td>{{.CommentsCount}}</td>
  <td>{{.PublishedDate}}</td>
  <td><a href="{{.URL}}" target="_blank">View</a></td>
</tr>
{{end}}</tbody>
</table>
</div>
</body>
</html>
`))
