package web

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var editNewsletterTmpl = tmpl(`<h1>Edit: {{ .Newsletter.Title }}</h1>

	<div class="mb-3">
		{{ StatusBadge .Newsletter.Status }}
		&middot; <a href="newsletter/{{ .Newsletter.Slug }}">View</a>
	</div>

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

		<button type="submit" class="btn btn-primary">Save</button>
	</form>`)

type editNewsletterData struct {
	*Route
	Newsletter  core.DBNewsletter
	Title       string
	PublisherID int
	Content     string
	Excerpt     string
}

func (data *editNewsletterData) Publishers() ([]core.DBPublisher, error) {
	return data.gz.PublisherDB.GetPublishersOf(data.User)
}

func editNewsletter(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	n, err := r.gz.NewsletterDB.GetNewsletter(id)
	if err != nil {
		return ErrNotFound
	}

	if r.User.ID() != n.AuthorID() {
		return ErrAuth
	}

	var data = &editNewsletterData{
		Route:       r,
		Newsletter:  n,
		Title:       n.Title(),
		PublisherID: n.PublisherID(),
		Content:     n.Content(),
		Excerpt:     n.Excerpt(),
	}

	if req.Method == http.MethodPost {

		data.Title = req.PostFormValue("title")
		data.PublisherID, _ = strconv.Atoi(req.PostFormValue("publisher"))
		data.Content = req.PostFormValue("content")
		data.Excerpt = req.PostFormValue("excerpt")

		if err := r.gz.EditNewsletter(n, r.User, data.Title, data.Content, data.Excerpt, data.PublisherID); err == nil {
			r.Success("%s has been saved", data.Title)
			r.SeeOther("/edit-newsletter/%d", n.ID())
			return nil
		} else {
			r.Danger(err)
		}
	}

	return editNewsletterTmpl.Execute(w, data)
}
