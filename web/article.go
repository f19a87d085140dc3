package web

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var articleTmpl = tmpl(`
	{{ if ne .Article.Status "published" }}
		<div class="alert alert-warning mt-3" role="alert">
			This article is not published. You are previewing it because you wrote it or because you are an editor.
			{{ StatusBadge .Article.Status }}
		</div>
		{{ if .Article.ReviewNote }}
			<div class="alert alert-danger" role="alert">
				Review note: {{ .Article.ReviewNote }}
			</div>
		{{ end }}
	{{ end }}

	<h1>{{ .Article.Title }}</h1>

	<div class="article-meta mb-3">
		{{ with .Author }}by {{ JournalistLink . }}{{ end }}
		{{ with .Publisher }} &middot; {{ PublisherLink . }}{{ end }}
		{{ if .Article.PublishedAt }} &middot; {{ .FormatDateTime .Article.PublishedAt }}{{ end }}
	</div>

	{{ .Body }}

	{{ if .CanManage }}
		<div class="mt-4">
			<a class="btn btn-sm btn-secondary" href="edit/{{ .Article.ID }}">Edit</a>
			<a class="btn btn-sm btn-secondary" href="delete/{{ .Article.ID }}">Delete</a>
		</div>
	{{ end }}`)

type articleData struct {
	*Route
	Article core.DBArticle
}

func (data *articleData) Author() core.DBUser {
	u, err := data.gz.UserDB.GetUser(data.Article.AuthorID())
	if err != nil {
		return nil
	}
	return u
}

func (data *articleData) Publisher() core.DBPublisher {
	if data.Article.PublisherID() == 0 {
		return nil
	}
	p, err := data.gz.PublisherDB.GetPublisher(data.Article.PublisherID())
	if err != nil {
		return nil
	}
	return p
}

func (data *articleData) Body() template.HTML {
	return core.RenderContent(data.Article.Content())
}

func (data *articleData) CanManage() bool {
	if data.User == nil {
		return false
	}
	return data.IsEditor() || data.User.ID() == data.Article.AuthorID()
}

func article(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	selected, err := r.gz.ArticleDB.GetArticleBySlug(params.ByName("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// unpublished articles are previewable by their author and by editors
	if selected.Status() != core.Published {
		if r.User == nil || (!r.IsEditor() && r.User.ID() != selected.AuthorID()) {
			return ErrNotFound
		}
	}

	return articleTmpl.Execute(w, &articleData{
		Route:   r,
		Article: selected,
	})
}
