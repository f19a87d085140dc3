package web

import (
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var newsletterTmpl = tmpl(`
	{{ if ne .Newsletter.Status "published" }}
		<div class="alert alert-warning">
			This newsletter is a draft. Only you can see it.
		</div>
	{{ end }}

	<h1>{{ .Newsletter.Title }}</h1>

	<div class="article-meta mb-3">
		{{ with .Author }}by {{ JournalistLink . }}{{ end }}
		{{ with .Publisher }} &middot; for {{ PublisherLink . }}{{ end }}
		{{ if eq .Newsletter.Status "published" }}
			&middot; {{ .FormatDateTime .Newsletter.PublishedAt }}
		{{ end }}
	</div>

	{{ .Body }}`)

type newsletterData struct {
	*Route
	Newsletter core.DBNewsletter
	Author     core.DBUser
	Publisher  core.DBPublisher
}

func (data *newsletterData) Body() template.HTML {
	return core.RenderContent(data.Newsletter.Content())
}

func newsletter(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	n, err := r.gz.NewsletterDB.GetNewsletterBySlug(params.ByName("slug"))
	if err != nil {
		return ErrNotFound
	}

	// drafts are visible to their author only
	if n.Status() != core.Published {
		if !r.LoggedIn() || r.User.ID() != n.AuthorID() {
			return ErrNotFound
		}
	}

	var author core.DBUser
	if u, err := r.gz.UserDB.GetUser(n.AuthorID()); err == nil {
		author = u
	}

	var publisher core.DBPublisher
	if n.PublisherID() != 0 {
		if p, err := r.gz.PublisherDB.GetPublisher(n.PublisherID()); err == nil {
			publisher = p
		}
	}

	return newsletterTmpl.Execute(w, &newsletterData{
		Route:      r,
		Newsletter: n,
		Author:     author,
		Publisher:  publisher,
	})
}
