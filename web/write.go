package web

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var writeTmpl = tmpl(`<h1>Write an Article</h1>

	<form method="post">

		<div class="form-group">
			<input class="form-control" name="title" placeholder="Title" value="{{ .Title }}">
		</div>

		<div class="form-group">
			<select class="form-control" name="publisher">
				<option value="0">Independent</option>
				{{ range .Publishers }}
					<option value="{{ .ID }}" {{ if eq .ID $.PublisherID -}} selected {{- end }}>{{ .Name }}</option>
				{{ end }}
			</select>
		</div>

		<div class="form-group">
			<textarea class="form-control" name="content" rows="16" placeholder="Content (markdown)">{{ .Content }}</textarea>
		</div>

		<div class="form-group">
			<input class="form-control" name="excerpt" placeholder="Excerpt (optional, derived from the content if empty)" value="{{ .Excerpt }}">
		</div>

		<button type="submit" class="btn btn-primary">Save draft</button>
	</form>`)

type writeData struct {
	*Route
	Title       string
	PublisherID int
	Content     string
	Excerpt     string
}

// Publishers lists the publishers the journalist works for. Independent
// articles are always possible.
func (data *writeData) Publishers() ([]core.DBPublisher, error) {
	return data.gz.PublisherDB.GetPublishersOf(data.User)
}

func write(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	if !r.IsJournalist() {
		return ErrAuth
	}

	var data = &writeData{
		Route: r,
	}

	if req.Method == http.MethodPost {

		data.Title = req.PostFormValue("title")
		data.PublisherID, _ = strconv.Atoi(req.PostFormValue("publisher"))
		data.Content = req.PostFormValue("content")
		data.Excerpt = req.PostFormValue("excerpt")

		if a, err := r.gz.CreateArticle(r.User, data.Title, data.Content, data.Excerpt, data.PublisherID); err == nil {
			r.Success("draft %s has been saved", a.Title())
			r.SeeOther("/my/articles")
			return nil
		} else {
			r.Danger(err)
		}
	}

	return writeTmpl.Execute(w, data)
}
