package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var myNewslettersTmpl = tmpl(`<h1>My Newsletters</h1>

	<p>
		<a class="btn btn-primary" href="write-newsletter">Write a newsletter</a>
	</p>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>Title</th>
				<th>Status</th>
				<th>Created</th>
				<th></th>
			</tr>
		</thead>
		<tbody>
			{{ range .Newsletters }}
				<tr>
					<td><a href="newsletter/{{ .Slug }}">{{ .Title }}</a></td>
					<td>{{ StatusBadge .Status }}</td>
					<td>{{ $.FormatDateTime .Created }}</td>
					<td class="text-right">
						{{ if eq .Status "draft" }}
							<a class="btn btn-sm btn-secondary" href="edit-newsletter/{{ .ID }}">Edit</a>
							<a class="btn btn-sm btn-primary" href="publish-newsletter/{{ .ID }}">Publish</a>
						{{ end }}
					</td>
				</tr>
			{{ else }}
				<tr>
					<td colspan="4">You have not written any newsletters yet.</td>
				</tr>
			{{ end }}
		</tbody>
	</table>`)

type myNewslettersData struct {
	*Route
}

func (data *myNewslettersData) Newsletters() ([]core.DBNewsletter, error) {
	return data.gz.NewsletterDB.GetNewsletters("", data.User.ID(), 1000, 0) // assuming nobody writes that many
}

func myNewsletters(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	if !r.IsJournalist() {
		return ErrAuth
	}

	return myNewslettersTmpl.Execute(w, &myNewslettersData{
		Route: r,
	})
}
