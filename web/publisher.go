package web

import (
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var publisherTmpl = tmpl(`<h1>{{ .Publisher.Name }}</h1>

	{{ with .Publisher.Description }}
		<p>{{ . }}</p>
	{{ end }}

	{{ with .Publisher.Website }}
		<p><a href="{{ . }}" rel="nofollow">{{ . }}</a></p>
	{{ end }}

	{{ if .IsReader }}
		<form method="post" action="subscribe/{{ .Publisher.ID }}">
			{{ if .Subscribed }}
				<button type="submit" class="btn btn-sm btn-outline-secondary">Unsubscribe</button>
			{{ else }}
				<button type="submit" class="btn btn-sm btn-primary">Subscribe</button>
			{{ end }}
		</form>
	{{ end }}

	<h2 class="mt-4">Articles</h2>

	{{ range .Articles }}
		<div class="article-teaser">
			<h2>{{ ArticleLink . }}</h2>
			<div class="article-meta">
				{{ with .Author }}by {{ JournalistLink . }} &middot; {{ end }}
				{{ $.FormatDateTime .PublishedAt }}
			</div>
			<p>{{ .Excerpt }}</p>
		</div>
	{{ else }}
		<p>No published articles yet.</p>
	{{ end }}

	<nav>
		<ul class="pagination justify-content-center">
			{{ range .PageLinks }}
				{{ . }}
			{{ end }}
		</ul>
	</nav>`)

type publisherData struct {
	*Route
	page      int
	Publisher core.DBPublisher
}

func (data *publisherData) Subscribed() bool {
	if data.User == nil {
		return false
	}
	subscribed, err := data.gz.SubscriptionDB.IsSubscribed(data.User.ID(), data.Publisher.ID())
	if err != nil {
		return false
	}
	return subscribed
}

func (data *publisherData) Articles() ([]articleTeaser, error) {
	articles, err := data.gz.ArticleDB.GetArticles(core.ArticleFilter{Status: core.Published, PublisherID: data.Publisher.ID()}, core.PublishedDesc, data.perPage(), (data.page-1)*data.perPage())
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

func (data *publisherData) PageLinks() []template.HTML {

	var pages = 1
	if count, err := data.gz.ArticleDB.CountArticles(core.ArticleFilter{Status: core.Published, PublisherID: data.Publisher.ID()}); err == nil {
		pages = numPages(count, data.perPage())
	}

	return pageLinks(data.page, pages, func(page int) string {
		return fmt.Sprintf("publisher/%d/%d", data.Publisher.ID(), page)
	})
}

func publisher(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return ErrNotFound
	}

	selected, err := r.gz.PublisherDB.GetPublisher(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return publisherTmpl.Execute(w, &publisherData{
		Route:     r,
		page:      paramPage(params),
		Publisher: selected,
	})
}

// subscribe toggles whether the logged-in reader is subscribed to a publisher.
func subscribe(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return ErrNotFound
	}

	selected, err := r.gz.PublisherDB.GetPublisher(id)
	if err != nil {
		return ErrNotFound
	}

	subscribed, err := r.gz.ToggleSubscription(r.User, selected)
	if err != nil {
		r.Danger(err)
	} else if subscribed {
		r.Success("Subscribed to %s.", selected.Name())
	} else {
		r.Success("Unsubscribed from %s.", selected.Name())
	}

	r.SeeOther("/publisher/%d", selected.ID())
	return nil
}
