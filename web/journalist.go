package web

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

const profileTeasers = 6

var journalistTmpl = tmpl(`<h1>{{ .Journalist.Name }}</h1>

	{{ with .Journalist.Bio }}
		<p>{{ . }}</p>
	{{ end }}

	{{ if .IsReader }}
		<form method="post" action="follow/{{ .Journalist.ID }}">
			{{ if .Following }}
				<button type="submit" class="btn btn-sm btn-outline-secondary">Unfollow</button>
			{{ else }}
				<button type="submit" class="btn btn-sm btn-primary">Follow</button>
			{{ end }}
		</form>
	{{ end }}

	<h2 class="mt-4">Latest Articles</h2>

	{{ range .Latest }}
		<div class="article-teaser">
			<h2>{{ ArticleLink . }}</h2>
			<div class="article-meta">
				{{ with .Publisher }}{{ PublisherLink . }} &middot; {{ end }}
				{{ $.FormatDateTime .PublishedAt }}
			</div>
			<p>{{ .Excerpt }}</p>
		</div>
	{{ else }}
		<p>No published articles yet.</p>
	{{ end }}`)

type journalistData struct {
	*Route
	Journalist core.DBUser
}

func (data *journalistData) Following() bool {
	if data.User == nil {
		return false
	}
	following, err := data.gz.SubscriptionDB.IsFollowing(data.User.ID(), data.Journalist.ID())
	if err != nil {
		return false
	}
	return following
}

func (data *journalistData) Latest() ([]articleTeaser, error) {
	articles, err := data.gz.ArticleDB.GetArticles(core.ArticleFilter{Status: core.Published, AuthorID: data.Journalist.ID()}, core.PublishedDesc, profileTeasers, 0)
	if err != nil {
		return nil, err
	}
	return data.teasers(articles), nil
}

func journalist(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return ErrNotFound
	}

	selected, err := r.gz.UserDB.GetUser(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if selected.Role() != core.Journalist {
		return ErrNotFound
	}

	return journalistTmpl.Execute(w, &journalistData{
		Route:      r,
		Journalist: selected,
	})
}

// follow toggles whether the logged-in reader follows a journalist.
func follow(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return ErrNotFound
	}

	selected, err := r.gz.UserDB.GetUser(id)
	if err != nil {
		return ErrNotFound
	}

	following, err := r.gz.ToggleFollow(r.User, selected)
	if err != nil {
		r.Danger(err)
	} else if following {
		r.Success("You are now following %s.", selected.Name())
	} else {
		r.Success("You unfollowed %s.", selected.Name())
	}

	r.SeeOther("/journalist/%d", selected.ID())
	return nil
}
