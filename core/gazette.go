// Package core models users, publishers, articles and newsletters and
// implements the editorial workflow on top of a set of storage interfaces.
package core

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// Gazette bundles the storage interfaces and the outbound collaborators.
// Main wires the fields once, everything else programs against this struct.
type Gazette struct {
	ApiClientDB
	ArticleDB
	NewsletterDB
	PublisherDB
	SubscriptionDB
	UserDB
	SessionManager *scs.SessionManager
	Mailer         Mailer       // nil if mail delivery is not configured
	Social         SocialPoster // nil unless social posting is enabled
	Config         Config
	SqlDB          *sql.DB
}

func (g *Gazette) Init(sessionStore scs.Store, cookiePath string) {
	g.SessionManager = scs.New()
	g.SessionManager.Store = sessionStore
	g.SessionManager.Cookie.Path = cookiePath + "/"
	g.SessionManager.Cookie.Persist = false                 // don't store cookie across browser sessions
	g.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	g.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	g.SessionManager.IdleTimeout = 12 * time.Hour
	g.SessionManager.Lifetime = 720 * time.Hour
}

func now() int64 {
	return time.Now().Unix()
}
