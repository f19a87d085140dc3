package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var reviewsTmpl = tmpl(`<h1>Review Queue</h1>

	<p>Oldest submissions first.</p>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>Title</th>
				<th>Author</th>
				<th>Publisher</th>
				<th>Created</th>
				<th></th>
			</tr>
		</thead>
		<tbody>
			{{ range .Queue }}
				<tr>
					<td>{{ .Title }}</td>
					<td>{{ with .Author }}{{ JournalistLink . }}{{ end }}</td>
					<td>{{ with .Publisher }}{{ PublisherLink . }}{{ else }}independent{{ end }}</td>
					<td>{{ $.FormatDateTime .Created }}</td>
					<td class="text-right">
						<a class="btn btn-sm btn-primary" href="review/{{ .ID }}">Review</a>
					</td>
				</tr>
			{{ else }}
				<tr>
					<td colspan="5">Nothing to review.</td>
				</tr>
			{{ end }}
		</tbody>
	</table>`)

type reviewsData struct {
	*Route
}

func (data *reviewsData) Queue() ([]articleTeaser, error) {
	articles, err := data.gz.ArticleDB.GetArticles(core.ArticleFilter{Status: core.Pending}, core.CreatedAsc, 1000, 0) // assuming the queue never grows that long
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

func reviews(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	if !r.IsEditor() {
		return ErrAuth
	}

	return reviewsTmpl.Execute(w, &reviewsData{
		Route: r,
	})
}
