package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

const homeTeasers = 6

var homeTmpl = tmpl(`<h1>Latest Articles</h1>

	{{ range .Latest }}
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

	<p>
		<a href="articles">All articles &raquo;</a>
	</p>`)

type homeData struct {
	*Route
}

func (data *homeData) Latest() ([]articleTeaser, error) {
	articles, err := data.gz.ArticleDB.GetArticles(core.ArticleFilter{Status: core.Published}, core.PublishedDesc, homeTeasers, 0)
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

func home(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {
	return homeTmpl.Execute(w, &homeData{
		Route: r,
	})
}
