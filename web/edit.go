package web

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var editTmpl = tmpl(`<h1>Edit: {{ .Article.Title }}</h1>

	<div class="mb-3">
		{{ StatusBadge .Article.Status }}
		&middot; <a href="article/{{ .Article.Slug }}">View</a>
	</div>

	{{ if and (eq .Article.Status "rejected") .Article.ReviewNote }}
		<div class="alert alert-danger">
			Rejected: {{ .Article.ReviewNote }}
		</div>
	{{ end }}

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
	</form>

	{{ if eq .Article.Status "draft" }}
		<form method="post" action="submit/{{ .Article.ID }}" class="mt-3">
			<button type="submit" class="btn btn-secondary">Submit for review</button>
		</form>
	{{ end }}`)

type editData struct {
	*Route
	Article     core.DBArticle
	Title       string
	PublisherID int
	Content     string
	Excerpt     string
}

// Publishers lists the publishers of the article's author, so editors see
// the author's options, not their own.
func (data *editData) Publishers() ([]core.DBPublisher, error) {
	author, err := data.gz.UserDB.GetUser(data.Article.AuthorID())
	if err != nil {
		return nil, err
	}
	return data.gz.PublisherDB.GetPublishersOf(author)
}

func edit(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	a, err := r.gz.ArticleDB.GetArticle(id)
	if err != nil {
		return ErrNotFound
	}

	if !r.IsEditor() && r.User.ID() != a.AuthorID() {
		return ErrAuth
	}

	var data = &editData{
		Route:       r,
		Article:     a,
		Title:       a.Title(),
		PublisherID: a.PublisherID(),
		Content:     a.Content(),
		Excerpt:     a.Excerpt(),
	}

	if req.Method == http.MethodPost {

		data.Title = req.PostFormValue("title")
		data.PublisherID, _ = strconv.Atoi(req.PostFormValue("publisher"))
		data.Content = req.PostFormValue("content")
		data.Excerpt = req.PostFormValue("excerpt")

		if err := r.gz.EditArticle(a, r.User, data.Title, data.Content, data.Excerpt, data.PublisherID); err == nil {
			r.Success("%s has been saved", data.Title)
			r.SeeOther("/edit/%d", a.ID())
			return nil
		} else {
			r.Danger(err)
		}
	}

	return editTmpl.Execute(w, data)
}
