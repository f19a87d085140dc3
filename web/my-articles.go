package web

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var myArticlesTmpl = tmpl(`<h1>My Articles</h1>

	<p>
		<a class="btn btn-primary" href="write">Write an article</a>
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
			{{ range .Articles }}
				<tr>
					<td>
						{{ if eq .Status "published" }}
							{{ ArticleLink . }}
						{{ else }}
							<a href="article/{{ .Slug }}">{{ .Title }}</a>
						{{ end }}
					</td>
					<td>
						{{ StatusBadge .Status }}
						{{ if and (eq .Status "rejected") .ReviewNote }}
							<div class="article-meta">{{ .ReviewNote }}</div>
						{{ end }}
					</td>
					<td>{{ $.FormatDateTime .Created }}</td>
					<td class="text-right">
						{{ if or (eq .Status "draft") (eq .Status "rejected") }}
							<a class="btn btn-sm btn-secondary" href="edit/{{ .ID }}">Edit</a>
						{{ end }}
						{{ if eq .Status "draft" }}
							<form method="post" action="submit/{{ .ID }}" class="d-inline">
								<button type="submit" class="btn btn-sm btn-primary">Submit for review</button>
							</form>
						{{ end }}
						{{ if eq .Status "rejected" }}
							<form method="post" action="resubmit/{{ .ID }}" class="d-inline">
								<button type="submit" class="btn btn-sm btn-primary">Back to draft</button>
							</form>
						{{ end }}
						<a class="btn btn-sm btn-danger" href="delete/{{ .ID }}">Delete</a>
					</td>
				</tr>
			{{ else }}
				<tr>
					<td colspan="4">You have not written any articles yet.</td>
				</tr>
			{{ end }}
		</tbody>
	</table>

	{{ if gt .NumPages 1 }}
		<nav>
			<ul class="pagination">
				{{ range .PageLinks }}
					{{ . }}
				{{ end }}
			</ul>
		</nav>
	{{ end }}`)

type myArticlesData struct {
	*Route
	page     int
	numPages int
}

func (data *myArticlesData) Articles() ([]core.DBArticle, error) {
	return data.gz.ArticleDB.GetArticles(core.ArticleFilter{AuthorID: data.User.ID()}, core.CreatedDesc, data.perPage(), (data.page-1)*data.perPage())
}

func (data *myArticlesData) NumPages() int {
	return data.numPages
}

func (data *myArticlesData) PageLinks() []template.HTML {
	return pageLinks(data.page, data.numPages, func(page int) string {
		return fmt.Sprintf("my/articles/%d", page)
	})
}

func myArticles(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	if !r.IsJournalist() {
		return ErrAuth
	}

	count, err := r.gz.ArticleDB.CountArticles(core.ArticleFilter{AuthorID: r.User.ID()})
	if err != nil {
		return err
	}

	return myArticlesTmpl.Execute(w, &myArticlesData{
		Route:    r,
		page:     paramPage(params),
		numPages: numPages(count, r.perPage()),
	})
}
