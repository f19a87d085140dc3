package web

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var feedTmpl = tmpl(`<h1>My Feed</h1>

	<p class="article-meta">Articles from your subscribed publishers and followed journalists, newest first.</p>

	{{ range .Articles }}
		<div class="article-teaser">
			<h2>{{ ArticleLink . }}</h2>
			<div class="article-meta">
				{{ with .Author }}by {{ JournalistLink . }}{{ end }}
				{{ with .Publisher }} &middot; {{ PublisherLink . }}{{ end }}
				&middot; {{ $.FormatDateTime .PublishedAt }}
			</div>
			<p>{{ .Excerpt }}</p>
		</div>
	{{ else }}
		<p>Your feed is empty. <a href="publishers">Subscribe to a publisher</a> or follow a journalist to fill it.</p>
	{{ end }}

	<nav>
		<ul class="pagination justify-content-center">
			{{ range .PageLinks }}
				{{ . }}
			{{ end }}
		</ul>
	</nav>`)

type feedData struct {
	*Route
	page int
}

func (data *feedData) Articles() ([]articleTeaser, error) {
	articles, err := data.gz.Feed(data.User, data.perPage(), (data.page-1)*data.perPage())
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

func (data *feedData) PageLinks() []template.HTML {

	var pages = 1
	if count, err := data.gz.CountFeed(data.User); err == nil {
		pages = numPages(count, data.perPage())
	}

	return pageLinks(data.page, pages, func(page int) string {
		return fmt.Sprintf("feed/%d", page)
	})
}

func feed(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	if !r.IsReader() {
		return ErrAuth
	}

	return feedTmpl.Execute(w, &feedData{
		Route: r,
		page:  paramPage(params),
	})
}
