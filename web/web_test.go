package web_test

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/wansing/gazette/core"
	"github.com/wansing/gazette/sqldb"
	"github.com/wansing/gazette/sqldb/sqlite3"
	"github.com/wansing/gazette/web"
)

type webTest struct {
	gz      *core.Gazette
	handler http.Handler
}

func newWebTest(t *testing.T) *webTest {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	var gz = &core.Gazette{}
	gz.Init(sqlite3.NewSessionStore(db), "")
	gz.UserDB = sqldb.NewUserDB(db)
	gz.PublisherDB = sqldb.NewPublisherDB(db)
	gz.ArticleDB = sqldb.NewArticleDB(db)
	gz.SubscriptionDB = sqldb.NewSubscriptionDB(db)
	gz.ApiClientDB = sqldb.NewApiClientDB(db)
	gz.NewsletterDB = sqldb.NewNewsletterDB(db)
	gz.Config = core.Config{SiteName: "Testing Gazette", SiteURL: "http://example.com", PerPage: 12}

	return &webTest{
		gz:      gz,
		handler: gz.SessionManager.LoadAndSave(web.NewRouter(gz, "")),
	}
}

func (wt *webTest) register(t *testing.T, mail string, role core.Role) core.DBUser {
	t.Helper()
	u, err := wt.gz.Register(mail, "", "hunter2", role)
	require.NoError(t, err)
	return u
}

// publish inserts an article and moves it to published.
func (wt *webTest) publish(t *testing.T, title, slug, content string, author core.DBUser, publisherID int) core.DBArticle {
	t.Helper()
	a, err := wt.gz.ArticleDB.InsertArticle(title, slug, content, content, author.ID(), publisherID)
	require.NoError(t, err)
	require.NoError(t, wt.gz.ArticleDB.SetPending(a))
	require.NoError(t, wt.gz.ArticleDB.SetPublished(a, 1, a.Created()))
	return a
}

// A browser sends requests to the handler and keeps session cookies between
// them, like a real browser does.
type browser struct {
	handler http.Handler
	cookies map[string]*http.Cookie
}

func (wt *webTest) browser() *browser {
	return &browser{handler: wt.handler, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	var req = httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	var rec = httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
		} else {
			b.cookies[c.Name] = c
		}
	}
	return rec
}

func (b *browser) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return b.do(t, http.MethodGet, target, nil)
}

func (b *browser) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return b.do(t, http.MethodPost, target, form)
}

func (b *browser) login(t *testing.T, mail string) {
	t.Helper()
	var rec = b.post(t, "/login", url.Values{"mail": {mail}, "password": {"hunter2"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestPublicPages(t *testing.T) {

	var wt = newWebTest(t)
	var journalist = wt.register(t, "joe@example.com", core.Journalist)
	wt.publish(t, "Hello World", "hello-world", "Lorem **ipsum** dolor.", journalist, 0)

	var b = wt.browser()

	t.Run("home shows the latest articles", func(t *testing.T) {
		var rec = b.get(t, "/")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Testing Gazette")
		require.Contains(t, rec.Body.String(), "Hello World")
		require.Contains(t, rec.Body.String(), `href="article/hello-world"`)
	})

	t.Run("article page renders the markdown content", func(t *testing.T) {
		var rec = b.get(t, "/article/hello-world")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "<h1>Hello World</h1>")
		require.Contains(t, rec.Body.String(), "<strong>ipsum</strong>")
		require.Contains(t, rec.Body.String(), "joe") // author name
	})

	t.Run("unknown slugs", func(t *testing.T) {
		var rec = b.get(t, "/article/no-such-slug")
		require.Contains(t, rec.Body.String(), "not found")
	})
}

func TestDraftPreview(t *testing.T) {

	var wt = newWebTest(t)
	var author = wt.register(t, "author@example.com", core.Journalist)
	wt.register(t, "other@example.com", core.Journalist)

	_, err := wt.gz.CreateArticle(author, "Work in Progress", "Not done yet.", "", 0)
	require.NoError(t, err)

	t.Run("anonymous visitors can't see drafts", func(t *testing.T) {
		var rec = wt.browser().get(t, "/article/work-in-progress")
		require.Contains(t, rec.Body.String(), "not found")
	})

	t.Run("other journalists can't see drafts", func(t *testing.T) {
		var b = wt.browser()
		b.login(t, "other@example.com")
		var rec = b.get(t, "/article/work-in-progress")
		require.Contains(t, rec.Body.String(), "not found")
	})

	t.Run("the author previews their draft", func(t *testing.T) {
		var b = wt.browser()
		b.login(t, "author@example.com")
		var rec = b.get(t, "/article/work-in-progress")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Work in Progress")
		require.Contains(t, rec.Body.String(), "This article is not published.")
	})
}

func TestSignup(t *testing.T) {

	var wt = newWebTest(t)
	var b = wt.browser()

	t.Run("mismatched passwords re-render the form", func(t *testing.T) {
		var rec = b.post(t, "/signup", url.Values{
			"mail":      {"rita@example.com"},
			"password1": {"hunter2"},
			"password2": {"hunter3"},
			"role":      {"reader"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "passwords don&#39;t match")
		require.Contains(t, rec.Body.String(), `value="rita@example.com"`) // entered mail is kept
	})

	t.Run("signup redirects to the login page", func(t *testing.T) {
		var rec = b.post(t, "/signup", url.Values{
			"mail":      {"rita@example.com"},
			"name":      {"Rita Reader"},
			"password1": {"hunter2"},
			"password2": {"hunter2"},
			"role":      {"reader"},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))

		// the flash notification survives the redirect
		rec = b.get(t, "/login")
		require.Contains(t, rec.Body.String(), "Your account has been created.")
	})

	t.Run("and the new account can log in", func(t *testing.T) {
		var rec = b.post(t, "/login", url.Values{"mail": {"rita@example.com"}, "password": {"hunter2"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/feed", rec.Header().Get("Location"))

		rec = b.get(t, "/feed")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Welcome Rita Reader!")
		require.Contains(t, rec.Body.String(), "Your feed is empty.")
	})
}

func TestLogin(t *testing.T) {

	var wt = newWebTest(t)
	wt.register(t, "reader@example.com", core.Reader)
	wt.register(t, "journalist@example.com", core.Journalist)
	wt.register(t, "editor@example.com", core.Editor)

	t.Run("wrong password re-renders the form", func(t *testing.T) {
		var rec = wt.browser().post(t, "/login", url.Values{"mail": {"reader@example.com"}, "password": {"wrong"}})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "wrong mail address or password")
	})

	t.Run("landing page depends on the role", func(t *testing.T) {
		for mail, landing := range map[string]string{
			"reader@example.com":     "/feed",
			"journalist@example.com": "/dashboard",
			"editor@example.com":     "/reviews",
		} {
			var rec = wt.browser().post(t, "/login", url.Values{"mail": {mail}, "password": {"hunter2"}})
			require.Equal(t, http.StatusSeeOther, rec.Code, mail)
			require.Equal(t, landing, rec.Header().Get("Location"), mail)
		}
	})

	t.Run("logout ends the session", func(t *testing.T) {
		var b = wt.browser()
		b.login(t, "reader@example.com")

		var rec = b.get(t, "/logout")
		require.Equal(t, http.StatusSeeOther, rec.Code)

		rec = b.get(t, "/feed")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})

	t.Run("restricted pages redirect to the login page", func(t *testing.T) {
		var rec = wt.browser().get(t, "/write")
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestSubscribeAndFeed(t *testing.T) {

	var wt = newWebTest(t)
	wt.register(t, "reader@example.com", core.Reader)
	var j1 = wt.register(t, "j1@example.com", core.Journalist)
	var j2 = wt.register(t, "j2@example.com", core.Journalist)
	daily, err := wt.gz.PublisherDB.InsertPublisher("The Daily", "", "")
	require.NoError(t, err)

	wt.publish(t, "From The Daily", "from-the-daily", "", j1, daily.ID())
	wt.publish(t, "From J2", "from-j2", "", j2, 0)
	wt.publish(t, "Unrelated", "unrelated", "", j1, 0)

	var b = wt.browser()
	b.login(t, "reader@example.com")

	t.Run("the feed starts empty", func(t *testing.T) {
		var rec = b.get(t, "/feed")
		require.Contains(t, rec.Body.String(), "Your feed is empty.")
	})

	t.Run("subscribing to a publisher", func(t *testing.T) {
		var rec = b.post(t, "/subscribe/"+strconv.Itoa(daily.ID()), nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/publisher/"+strconv.Itoa(daily.ID()), rec.Header().Get("Location"))

		rec = b.get(t, "/feed")
		require.Contains(t, rec.Body.String(), "From The Daily")
		require.NotContains(t, rec.Body.String(), "From J2")
		require.NotContains(t, rec.Body.String(), "Unrelated")
	})

	t.Run("following a journalist", func(t *testing.T) {
		var rec = b.post(t, "/follow/"+strconv.Itoa(j2.ID()), nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)

		rec = b.get(t, "/feed")
		require.Contains(t, rec.Body.String(), "From The Daily")
		require.Contains(t, rec.Body.String(), "From J2")
		require.NotContains(t, rec.Body.String(), "Unrelated")
	})

	t.Run("the subscriptions page lists both", func(t *testing.T) {
		var rec = b.get(t, "/subscriptions")
		require.Contains(t, rec.Body.String(), "The Daily")
		require.Contains(t, rec.Body.String(), "j2")
	})
}

// The full editorial roundtrip through the HTML interface: a journalist
// writes and submits, an editor rejects, the journalist reworks, the editor
// approves.
func TestEditorialWorkflow(t *testing.T) {

	var wt = newWebTest(t)
	wt.register(t, "journalist@example.com", core.Journalist)
	wt.register(t, "editor@example.com", core.Editor)

	var journalist = wt.browser()
	journalist.login(t, "journalist@example.com")
	var editor = wt.browser()
	editor.login(t, "editor@example.com")

	// write
	var rec = journalist.post(t, "/write", url.Values{
		"title":     {"Breaking News"},
		"content":   {"Something happened."},
		"publisher": {"0"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/my/articles", rec.Header().Get("Location"))

	a, err := wt.gz.ArticleDB.GetArticleBySlug("breaking-news")
	require.NoError(t, err)
	var id = strconv.Itoa(a.ID())

	rec = journalist.get(t, "/my/articles")
	require.Contains(t, rec.Body.String(), "Breaking News")
	require.Contains(t, rec.Body.String(), "draft")

	// submit
	rec = journalist.post(t, "/submit/"+id, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	// the editor's queue shows it
	rec = editor.get(t, "/reviews")
	require.Contains(t, rec.Body.String(), "Breaking News")

	// reject
	rec = editor.post(t, "/review/"+id, url.Values{
		"reject": {"reject"},
		"reason": {"thin on facts"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/reviews", rec.Header().Get("Location"))

	// the journalist sees the review note and reworks the draft
	rec = journalist.get(t, "/my/articles")
	require.Contains(t, rec.Body.String(), "rejected")
	require.Contains(t, rec.Body.String(), "thin on facts")

	rec = journalist.post(t, "/resubmit/"+id, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = journalist.post(t, "/edit/"+id, url.Values{
		"title":     {"Breaking News"},
		"content":   {"Something happened, with details."},
		"publisher": {"0"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = journalist.post(t, "/submit/"+id, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	// approve
	rec = editor.post(t, "/review/"+id, url.Values{"approve": {"approve"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/reviews", rec.Header().Get("Location"))

	a, err = wt.gz.ArticleDB.GetArticle(a.ID())
	require.NoError(t, err)
	require.Equal(t, core.Published, a.Status())

	// now everybody can read it
	rec = wt.browser().get(t, "/article/breaking-news")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "with details")
}

func TestReviewRequiresEditor(t *testing.T) {

	var wt = newWebTest(t)
	var author = wt.register(t, "journalist@example.com", core.Journalist)

	a, err := wt.gz.CreateArticle(author, "Sneaky", "Self-approval attempt.", "", 0)
	require.NoError(t, err)
	require.NoError(t, wt.gz.Submit(a, author))

	var b = wt.browser()
	b.login(t, "journalist@example.com")

	var rec = b.post(t, "/review/"+strconv.Itoa(a.ID()), url.Values{"approve": {"approve"}})
	require.Contains(t, rec.Body.String(), "unauthorized")

	got, err := wt.gz.ArticleDB.GetArticle(a.ID())
	require.NoError(t, err)
	require.Equal(t, core.Pending, got.Status())
}

func TestNewsletterPages(t *testing.T) {

	var wt = newWebTest(t)
	wt.register(t, "journalist@example.com", core.Journalist)

	var b = wt.browser()
	b.login(t, "journalist@example.com")

	// write a newsletter
	var rec = b.post(t, "/write-newsletter", url.Values{
		"title":     {"Week 34"},
		"content":   {"What a week."},
		"publisher": {"0"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/my/newsletters", rec.Header().Get("Location"))

	n, err := wt.gz.NewsletterDB.GetNewsletterBySlug("week-34")
	require.NoError(t, err)

	t.Run("drafts are only visible to the author", func(t *testing.T) {
		var rec = wt.browser().get(t, "/newsletter/week-34")
		require.Contains(t, rec.Body.String(), "not found")

		rec = b.get(t, "/newsletter/week-34")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Week 34")
	})

	t.Run("publishing", func(t *testing.T) {
		var rec = b.post(t, "/publish-newsletter/"+strconv.Itoa(n.ID()), url.Values{"publish": {"publish"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/newsletter/week-34", rec.Header().Get("Location"))

		rec = wt.browser().get(t, "/newsletter/week-34")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "What a week.")
	})
}
