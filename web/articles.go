package web

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var articlesTmpl = tmpl(`<h1>All Articles</h1>

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
		<p>Nothing has been published yet.</p>
	{{ end }}

	<nav>
		<ul class="pagination justify-content-center">
			{{ range .PageLinks }}
				{{ . }}
			{{ end }}
		</ul>
	</nav>`)

type articlesData struct {
	*Route
	page int
}

func (data *articlesData) Articles() ([]articleTeaser, error) {
	articles, err := data.gz.ArticleDB.GetArticles(core.ArticleFilter{Status: core.Published}, core.PublishedDesc, data.perPage(), (data.page-1)*data.perPage())
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

func (data *articlesData) PageLinks() []template.HTML {

	var pages = 1
	if count, err := data.gz.ArticleDB.CountArticles(core.ArticleFilter{Status: core.Published}); err == nil {
		pages = numPages(count, data.perPage())
	}

	return pageLinks(data.page, pages, func(page int) string {
		return fmt.Sprintf("articles/%d", page)
	})
}

func articles(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {
	return articlesTmpl.Execute(w, &articlesData{
		Route: r,
		page:  paramPage(params),
	})
}
