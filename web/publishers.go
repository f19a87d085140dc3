package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var publishersTmpl = tmpl(`<h1>Publishers</h1>

	<div class="list-group">
		{{ range .Publishers }}
			<a class="list-group-item list-group-item-action" href="publisher/{{ .ID }}">
				<strong>{{ .Name }}</strong>
				{{ with .Description }}<br>{{ . }}{{ end }}
			</a>
		{{ else }}
			<p>No publishers yet.</p>
		{{ end }}
	</div>`)

type publishersData struct {
	*Route
}

func (data *publishersData) Publishers() ([]core.DBPublisher, error) {
	return data.gz.PublisherDB.GetAllPublishers(10000, 0) // assuming there are not more than 10k publishers
}

func publishers(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {
	return publishersTmpl.Execute(w, &publishersData{
		Route: r,
	})
}
