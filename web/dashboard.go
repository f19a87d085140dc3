package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

const dashboardTeasers = 6

var readerDashboardTmpl = tmpl(`<h1>Reader Dashboard</h1>

	<div class="row">
		<div class="col-md-4">
			<h2>Subscribed Publishers</h2>
			<ul>
				{{ range .Publishers }}
					<li>{{ PublisherLink . }}</li>
				{{ else }}
					<li>none</li>
				{{ end }}
			</ul>
		</div>
		<div class="col-md-4">
			<h2>Followed Journalists</h2>
			<ul>
				{{ range .Journalists }}
					<li>{{ JournalistLink . }}</li>
				{{ else }}
					<li>none</li>
				{{ end }}
			</ul>
		</div>
	</div>

	<h2>Recent Feed</h2>

	{{ range .Recent }}
		<div class="article-teaser">
			<h2>{{ ArticleLink . }}</h2>
			<div class="article-meta">
				{{ with .Author }}by {{ JournalistLink . }}{{ end }}
				&middot; {{ $.FormatDateTime .PublishedAt }}
			</div>
		</div>
	{{ else }}
		<p>Nothing here yet.</p>
	{{ end }}

	<p><a href="feed">Full feed &raquo;</a></p>`)

type readerDashboardData struct {
	*Route
}

func (data *readerDashboardData) Publishers() ([]core.DBPublisher, error) {
	return data.gz.SubscriptionDB.GetSubscribedPublishers(data.User.ID())
}

func (data *readerDashboardData) Journalists() ([]core.DBUser, error) {
	return data.gz.SubscriptionDB.GetFollowedJournalists(data.User.ID())
}

func (data *readerDashboardData) Recent() ([]articleTeaser, error) {
	articles, err := data.gz.Feed(data.User, dashboardTeasers, 0)
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

var journalistDashboardTmpl = tmpl(`<h1>Journalist Dashboard</h1>

	<div class="row text-center mb-3">
		<div class="col">
			<h2>{{ .CountDrafts }}</h2>
			<div class="article-meta">drafts</div>
		</div>
		<div class="col">
			<h2>{{ .CountPending }}</h2>
			<div class="article-meta">pending review</div>
		</div>
		<div class="col">
			<h2>{{ .CountPublished }}</h2>
			<div class="article-meta">published</div>
		</div>
	</div>

	<p>
		<a class="btn btn-primary" href="write">Write an article</a>
		<a class="btn btn-secondary" href="write-newsletter">Write a newsletter</a>
	</p>

	<h2>Recent Work</h2>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>Title</th>
				<th>Status</th>
				<th>Created</th>
			</tr>
		</thead>
		<tbody>
			{{ range .Recent }}
				<tr>
					<td><a href="edit/{{ .ID }}">{{ .Title }}</a></td>
					<td>{{ StatusBadge .Status }}</td>
					<td>{{ $.FormatDateTime .Created }}</td>
				</tr>
			{{ else }}
				<tr>
					<td colspan="3">You have not written anything yet.</td>
				</tr>
			{{ end }}
		</tbody>
	</table>`)

type journalistDashboardData struct {
	*Route
}

func (data *journalistDashboardData) count(status core.Status) int {
	count, err := data.gz.ArticleDB.CountArticles(core.ArticleFilter{Status: status, AuthorID: data.User.ID()})
	if err != nil {
		return 0
	}
	return count
}

func (data *journalistDashboardData) CountDrafts() int {
	return data.count(core.Draft)
}

func (data *journalistDashboardData) CountPending() int {
	return data.count(core.Pending)
}

func (data *journalistDashboardData) CountPublished() int {
	return data.count(core.Published)
}

func (data *journalistDashboardData) Recent() ([]core.DBArticle, error) {
	return data.gz.ArticleDB.GetArticles(core.ArticleFilter{AuthorID: data.User.ID()}, core.CreatedDesc, dashboardTeasers, 0)
}

var editorDashboardTmpl = tmpl(`<h1>Editor Dashboard</h1>

	<div class="row text-center mb-3">
		<div class="col">
			<h2>{{ .CountPending }}</h2>
			<div class="article-meta">pending review</div>
		</div>
		<div class="col">
			<h2>{{ .CountPublished }}</h2>
			<div class="article-meta">published</div>
		</div>
	</div>

	{{ with .Publishers }}
		<h2>Your Publishers</h2>
		<ul>
			{{ range . }}
				<li>{{ PublisherLink . }}</li>
			{{ end }}
		</ul>
	{{ end }}

	<h2>Review Queue</h2>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>Title</th>
				<th>Submitted by</th>
				<th>Created</th>
			</tr>
		</thead>
		<tbody>
			{{ range .Queue }}
				<tr>
					<td><a href="review/{{ .ID }}">{{ .Title }}</a></td>
					<td>{{ with .Author }}{{ JournalistLink . }}{{ end }}</td>
					<td>{{ $.FormatDateTime .Created }}</td>
				</tr>
			{{ else }}
				<tr>
					<td colspan="3">Nothing to review.</td>
				</tr>
			{{ end }}
		</tbody>
	</table>

	<p><a href="reviews">Full review queue &raquo;</a></p>

	<h2>Recently Published</h2>

	{{ range .Recent }}
		<div class="article-teaser">
			<h2>{{ ArticleLink . }}</h2>
			<div class="article-meta">
				{{ with .Author }}by {{ JournalistLink . }}{{ end }}
				&middot; {{ $.FormatDateTime .PublishedAt }}
			</div>
		</div>
	{{ else }}
		<p>Nothing has been published yet.</p>
	{{ end }}`)

type editorDashboardData struct {
	*Route
}

func (data *editorDashboardData) CountPending() int {
	count, err := data.gz.ArticleDB.CountArticles(core.ArticleFilter{Status: core.Pending})
	if err != nil {
		return 0
	}
	return count
}

func (data *editorDashboardData) CountPublished() int {
	count, err := data.gz.ArticleDB.CountArticles(core.ArticleFilter{Status: core.Published})
	if err != nil {
		return 0
	}
	return count
}

func (data *editorDashboardData) Publishers() []core.DBPublisher {
	publishers, err := data.gz.PublisherDB.GetPublishersOf(data.User)
	if err != nil {
		return nil
	}
	return publishers
}

func (data *editorDashboardData) Queue() ([]articleTeaser, error) {
	articles, err := data.gz.ArticleDB.GetArticles(core.ArticleFilter{Status: core.Pending}, core.CreatedAsc, dashboardTeasers, 0)
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

func (data *editorDashboardData) Recent() ([]articleTeaser, error) {
	articles, err := data.gz.ArticleDB.GetArticles(core.ArticleFilter{Status: core.Published}, core.PublishedDesc, dashboardTeasers, 0)
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

func dashboard(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {
	switch r.User.Role() {
	case core.Journalist:
		return journalistDashboardTmpl.Execute(w, &journalistDashboardData{Route: r})
	case core.Editor:
		return editorDashboardTmpl.Execute(w, &editorDashboardData{Route: r})
	default:
		return readerDashboardTmpl.Execute(w, &readerDashboardData{Route: r})
	}
}
