// Package web serves the server-rendered user interface: public article
// pages, the reader feed, the journalist writing desk and the editor
// review queue.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/util"
)

var ErrAuth = errors.New("unauthorized")
var ErrNotFound = errors.New("not found")

// A Route is the context of a single request. It carries the Gazette, so
// handlers and template data methods can reach the stores.
type Route struct {
	*core.Request
	Prefix string // with trailing slash
	gz     *core.Gazette
}

func (r *Route) SiteName() string {
	return r.gz.Config.SiteName
}

func middleware(gz *core.Gazette, prefix string, requireLoggedIn bool, f func(http.ResponseWriter, *http.Request, *Route, httprouter.Params) error) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var r = &Route{
			Request: gz.NewRequest(w, req),
			Prefix:  prefix + "/",
			gz:      gz,
		}
		defer r.Cleanup()

		if requireLoggedIn && !r.LoggedIn() {
			r.SeeOther("/login")
			return
		}

		if err := f(w, req, r, params); err != nil {
			// probably no template has been executed, so execute error template
			errorTmpl.Execute(w, struct {
				*Route
				Err error
			}{
				Route: r,
				Err:   err,
			})
		}
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

func NewRouter(gz *core.Gazette, prefix string) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	// public
	router.GET("/", middleware(gz, prefix, false, home))
	router.GET("/articles", middleware(gz, prefix, false, articles))
	router.GET("/articles/:page", middleware(gz, prefix, false, articles))
	router.GET("/article/:slug", middleware(gz, prefix, false, article))
	router.GET("/journalist/:id", middleware(gz, prefix, false, journalist))
	GETAndPOST("/login", middleware(gz, prefix, false, login))
	router.GET("/newsletter/:slug", middleware(gz, prefix, false, newsletter))
	router.GET("/publishers", middleware(gz, prefix, false, publishers))
	router.GET("/publisher/:id", middleware(gz, prefix, false, publisher))
	router.GET("/publisher/:id/:page", middleware(gz, prefix, false, publisher))
	GETAndPOST("/signup", middleware(gz, prefix, false, signup))

	// any logged-in user
	GETAndPOST("/account", middleware(gz, prefix, true, account))
	router.GET("/dashboard", middleware(gz, prefix, true, dashboard))
	router.GET("/logout", middleware(gz, prefix, true, logout))

	// readers
	router.GET("/feed", middleware(gz, prefix, true, feed))
	router.GET("/feed/:page", middleware(gz, prefix, true, feed))
	router.POST("/follow/:id", middleware(gz, prefix, true, follow))
	router.POST("/subscribe/:id", middleware(gz, prefix, true, subscribe))
	router.GET("/subscriptions", middleware(gz, prefix, true, subscriptions))

	// journalists
	GETAndPOST("/delete/:id", middleware(gz, prefix, true, del))
	GETAndPOST("/edit/:id", middleware(gz, prefix, true, edit))
	GETAndPOST("/edit-newsletter/:id", middleware(gz, prefix, true, editNewsletter))
	router.GET("/my/articles", middleware(gz, prefix, true, myArticles))
	router.GET("/my/articles/:page", middleware(gz, prefix, true, myArticles))
	router.GET("/my/newsletters", middleware(gz, prefix, true, myNewsletters))
	GETAndPOST("/publish-newsletter/:id", middleware(gz, prefix, true, publishNewsletter))
	router.POST("/resubmit/:id", middleware(gz, prefix, true, resubmit))
	router.POST("/submit/:id", middleware(gz, prefix, true, submit))
	GETAndPOST("/write", middleware(gz, prefix, true, write))
	GETAndPOST("/write-newsletter", middleware(gz, prefix, true, writeNewsletter))

	// editors
	router.GET("/reviews", middleware(gz, prefix, true, reviews))
	GETAndPOST("/review/:id", middleware(gz, prefix, true, review))

	return router
}

func tmpl(text string) *template.Template {
	t := template.Must(baseTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var baseTmpl = template.Must(template.New("base").Parse(`
<!DOCTYPE html>
<html lang="en">
	<head>
		<base href="{{ .Prefix }}">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
		<link rel="stylesheet" type="text/css" href="static/bootstrap.min.css">
		<title>{{ .SiteName }}</title>

		<style>

			body {
				padding-bottom: 1rem;
			}

			h1 {
				font-size: 1.6rem !important;
				margin: 1rem 0 0.7rem !important;
			}

			h2 {
				font-size: 1.3rem !important;
				margin: 0.2rem 0 0.5rem !important;
			}

			textarea {
				tab-size: 4;
				-moz-tab-size: 4;
			}

			.article-teaser {
				margin-bottom: 1.5rem;
			}

			.article-meta {
				color: #6c757d;
				font-size: 0.875rem;
			}

		</style>
	</head>
	<body>

		<nav class="navbar navbar-expand-md navbar-dark bg-dark">
			<a class="navbar-brand" href=".">{{ .SiteName }}</a>
			<ul class="navbar-nav mr-auto">
				<li class="nav-item">
					<a class="nav-link" href="articles">Articles</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="publishers">Publishers</a>
				</li>

				{{ if .IsReader }}
					<li class="nav-item">
						<a class="nav-link" href="feed">My Feed</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="subscriptions">Subscriptions</a>
					</li>
				{{ end }}

				{{ if .IsJournalist }}
					<li class="nav-item">
						<a class="nav-link" href="my/articles">My Articles</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="my/newsletters">My Newsletters</a>
					</li>
				{{ end }}

				{{ if .IsEditor }}
					<li class="nav-item">
						<a class="nav-link" href="reviews">Review Queue</a>
					</li>
				{{ end }}

				{{ if .LoggedIn }}
					<li class="nav-item">
						<a class="nav-link" href="dashboard">Dashboard</a>
					</li>
				{{ end }}
			</ul>
			<ul class="navbar-nav">
				{{ if .LoggedIn }}
					<li class="nav-item">
						<a class="nav-link" href="account">{{ .User.Name }}</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="logout">Logout</a>
					</li>
				{{ else }}
					<li class="nav-item">
						<a class="nav-link" href="login">Login</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="signup">Sign up</a>
					</li>
				{{ end }}
			</ul>
		</nav>

		<div class="container pt-3">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>
	</body>
</html>`)).Funcs(
	template.FuncMap{
		"ArticleLink": func(a core.DBArticle) template.HTML {
			return template.HTML(fmt.Sprintf(`<a href="article/%s">%s</a>`, a.Slug(), template.HTMLEscapeString(a.Title())))
		},
		"JournalistLink": func(u core.DBUser) template.HTML {
			return template.HTML(fmt.Sprintf(`<a href="journalist/%d">%s</a>`, u.ID(), template.HTMLEscapeString(u.Name())))
		},
		"NewsletterLink": func(n core.DBNewsletter) template.HTML {
			return template.HTML(fmt.Sprintf(`<a href="newsletter/%s">%s</a>`, n.Slug(), template.HTMLEscapeString(n.Title())))
		},
		"PublisherLink": func(p core.DBPublisher) template.HTML {
			return template.HTML(fmt.Sprintf(`<a href="publisher/%d">%s</a>`, p.ID(), template.HTMLEscapeString(p.Name())))
		},
		"StatusBadge": func(s core.Status) template.HTML {
			var style string
			switch s {
			case core.Draft:
				style = "secondary"
			case core.Pending:
				style = "warning"
			case core.Published:
				style = "success"
			case core.Rejected:
				style = "danger"
			default:
				style = "light"
			}
			return template.HTML(`<span class="badge badge-` + style + `">` + string(s) + `</span>`)
		},
	},
)

// pageLinks wraps util.PageLinks into bootstrap pagination items.
func pageLinks(currentPage, numPages int, href func(page int) string) []template.HTML {
	return util.PageLinks(
		currentPage,
		numPages,
		func(page int, name string) string {
			return fmt.Sprintf(`<li class="page-item"><a class="page-link" href="%s">%s</a></li>`, href(page), name)
		},
		func(page int, name string) string {
			return fmt.Sprintf(`<li class="page-item active"><span class="page-link">%d</span></li>`, page)
		},
	)
}
