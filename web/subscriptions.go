package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var subscriptionsTmpl = tmpl(`<h1>My Subscriptions</h1>

	<h2>Publishers</h2>

	<ul>
		{{ range .Publishers }}
			<li>{{ PublisherLink . }}</li>
		{{ else }}
			<li>You are not subscribed to any publisher. <a href="publishers">Browse publishers</a>.</li>
		{{ end }}
	</ul>

	<h2>Journalists</h2>

	<ul>
		{{ range .Journalists }}
			<li>{{ JournalistLink . }}</li>
		{{ else }}
			<li>You are not following any journalist.</li>
		{{ end }}
	</ul>`)

type subscriptionsData struct {
	*Route
}

func (data *subscriptionsData) Publishers() ([]core.DBPublisher, error) {
	return data.gz.SubscriptionDB.GetSubscribedPublishers(data.User.ID())
}

func (data *subscriptionsData) Journalists() ([]core.DBUser, error) {
	return data.gz.SubscriptionDB.GetFollowedJournalists(data.User.ID())
}

func subscriptions(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	if !r.IsReader() {
		return ErrAuth
	}

	return subscriptionsTmpl.Execute(w, &subscriptionsData{
		Route: r,
	})
}
