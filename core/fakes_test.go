package core_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wansing/gazette/core"
)

// In-memory implementations of the store interfaces. Unimplemented methods
// are inherited from the embedded nil interface and panic when called.

type fakeUser struct {
	id      int
	mail    string
	name    string
	role    core.Role
	bio     string
	created int64
}

func (u *fakeUser) ID() int         { return u.id }
func (u *fakeUser) Mail() string    { return u.mail }
func (u *fakeUser) Name() string    { return u.name }
func (u *fakeUser) Role() core.Role { return u.role }
func (u *fakeUser) Bio() string     { return u.bio }
func (u *fakeUser) Created() int64  { return u.created }

type fakeUserDB struct {
	core.UserDB
	users     map[int]*fakeUser
	passwords map[int]string
	nextID    int
}

func (db *fakeUserDB) GetUser(id int) (core.DBUser, error) {
	if u, ok := db.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("no such user")
}

func (db *fakeUserDB) InsertUser(mail, name string, role core.Role) (core.DBUser, error) {
	db.nextID++
	var u = &fakeUser{
		id:      db.nextID,
		mail:    mail,
		name:    name,
		role:    role,
		created: time.Now().Unix(),
	}
	db.users[u.id] = u
	return u, nil
}

func (db *fakeUserDB) SetPassword(u core.DBUser, password string) error {
	db.passwords[u.ID()] = password
	return nil
}

type fakeArticle struct {
	id          int
	title       string
	slug        string
	content     string
	excerpt     string
	author      int
	publisher   int
	status      core.Status
	reviewNote  string
	reviewer    int
	reviewedAt  int64
	publishedAt int64
	created     int64
	notified    bool
}

func (a *fakeArticle) ID() int             { return a.id }
func (a *fakeArticle) Title() string       { return a.title }
func (a *fakeArticle) Slug() string        { return a.slug }
func (a *fakeArticle) Content() string     { return a.content }
func (a *fakeArticle) Excerpt() string     { return a.excerpt }
func (a *fakeArticle) AuthorID() int       { return a.author }
func (a *fakeArticle) PublisherID() int    { return a.publisher }
func (a *fakeArticle) Status() core.Status { return a.status }
func (a *fakeArticle) ReviewNote() string  { return a.reviewNote }
func (a *fakeArticle) ReviewerID() int     { return a.reviewer }
func (a *fakeArticle) ReviewedAt() int64   { return a.reviewedAt }
func (a *fakeArticle) PublishedAt() int64  { return a.publishedAt }
func (a *fakeArticle) Created() int64      { return a.created }
func (a *fakeArticle) Notified() bool      { return a.notified }

type fakeArticleDB struct {
	core.ArticleDB
	articles map[int]*fakeArticle
	nextID   int
}

func (db *fakeArticleDB) DeleteArticle(a core.DBArticle) error {
	delete(db.articles, a.ID())
	return nil
}

func (db *fakeArticleDB) GetArticle(id int) (core.DBArticle, error) {
	if a, ok := db.articles[id]; ok {
		return a, nil
	}
	return nil, errors.New("no such article")
}

func (db *fakeArticleDB) InsertArticle(title, slug, content, excerpt string, authorID, publisherID int) (core.DBArticle, error) {
	db.nextID++
	var a = &fakeArticle{
		id:        db.nextID,
		title:     title,
		slug:      slug,
		content:   content,
		excerpt:   excerpt,
		author:    authorID,
		publisher: publisherID,
		status:    core.Draft,
		created:   time.Now().Unix(),
	}
	db.articles[a.id] = a
	return a, nil
}

func (db *fakeArticleDB) SetDraft(a core.DBArticle) error {
	var row = a.(*fakeArticle)
	if row.status != core.Rejected {
		return core.ErrInvalidTransition
	}
	row.status = core.Draft
	row.reviewNote = ""
	return nil
}

func (db *fakeArticleDB) SetNotified(a core.DBArticle) error {
	a.(*fakeArticle).notified = true
	return nil
}

func (db *fakeArticleDB) SetPending(a core.DBArticle) error {
	var row = a.(*fakeArticle)
	if row.status != core.Draft {
		return core.ErrInvalidTransition
	}
	row.status = core.Pending
	return nil
}

func (db *fakeArticleDB) SetPublished(a core.DBArticle, reviewerID int, publishedAt int64) error {
	var row = a.(*fakeArticle)
	if row.status != core.Pending {
		return core.ErrInvalidTransition
	}
	row.status = core.Published
	row.reviewer = reviewerID
	row.reviewedAt = publishedAt
	row.publishedAt = publishedAt
	return nil
}

func (db *fakeArticleDB) SetRejected(a core.DBArticle, reviewerID int, reviewedAt int64, note string) error {
	var row = a.(*fakeArticle)
	if row.status != core.Pending {
		return core.ErrInvalidTransition
	}
	row.status = core.Rejected
	row.reviewer = reviewerID
	row.reviewedAt = reviewedAt
	row.reviewNote = note
	return nil
}

func (db *fakeArticleDB) SlugTaken(slug string) (bool, error) {
	for _, a := range db.articles {
		if a.slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (db *fakeArticleDB) UpdateArticle(a core.DBArticle, title, content, excerpt string, publisherID int) error {
	var row = a.(*fakeArticle)
	row.title = title
	row.content = content
	row.excerpt = excerpt
	row.publisher = publisherID
	return nil
}

type fakePublisher struct {
	id   int
	name string
}

func (p *fakePublisher) ID() int             { return p.id }
func (p *fakePublisher) Name() string        { return p.name }
func (p *fakePublisher) Description() string { return "" }
func (p *fakePublisher) Website() string     { return "" }
func (p *fakePublisher) Created() int64      { return 0 }

type fakePublisherDB struct {
	core.PublisherDB
	publishers map[int]*fakePublisher
}

func (db *fakePublisherDB) GetPublisher(id int) (core.DBPublisher, error) {
	if p, ok := db.publishers[id]; ok {
		return p, nil
	}
	return nil, errors.New("no such publisher")
}

type pair struct {
	reader, target int
}

type fakeSubscriptionDB struct {
	core.SubscriptionDB
	users         *fakeUserDB
	subscriptions map[pair]bool // reader, publisher
	follows       map[pair]bool // reader, journalist
}

func (db *fakeSubscriptionDB) Follow(readerID, journalistID int) error {
	db.follows[pair{readerID, journalistID}] = true
	return nil
}

func (db *fakeSubscriptionDB) GetFollowers(journalistID int) ([]core.DBUser, error) {
	var followers []core.DBUser
	for p := range db.follows {
		if p.target == journalistID {
			followers = append(followers, db.users.users[p.reader])
		}
	}
	return followers, nil
}

func (db *fakeSubscriptionDB) GetSubscribers(publisherID int) ([]core.DBUser, error) {
	var subscribers []core.DBUser
	for p := range db.subscriptions {
		if p.target == publisherID {
			subscribers = append(subscribers, db.users.users[p.reader])
		}
	}
	return subscribers, nil
}

func (db *fakeSubscriptionDB) IsFollowing(readerID, journalistID int) (bool, error) {
	return db.follows[pair{readerID, journalistID}], nil
}

func (db *fakeSubscriptionDB) IsSubscribed(readerID, publisherID int) (bool, error) {
	return db.subscriptions[pair{readerID, publisherID}], nil
}

func (db *fakeSubscriptionDB) Subscribe(readerID, publisherID int) error {
	db.subscriptions[pair{readerID, publisherID}] = true
	return nil
}

func (db *fakeSubscriptionDB) Unfollow(readerID, journalistID int) error {
	delete(db.follows, pair{readerID, journalistID})
	return nil
}

func (db *fakeSubscriptionDB) Unsubscribe(readerID, publisherID int) error {
	delete(db.subscriptions, pair{readerID, publisherID})
	return nil
}

type sentMail struct {
	recipients []string
	subject    string
	body       string
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failAll bool
}

func (m *fakeMailer) SendEach(ctx context.Context, recipients []string, subject, body string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return recipients, errors.New("smtp is down")
	}
	m.sent = append(m.sent, sentMail{recipients, subject, body})
	return nil, nil
}

type fakeSocial struct {
	posts []string
	err   error
}

func (s *fakeSocial) Post(ctx context.Context, text string) error {
	if s.err != nil {
		return s.err
	}
	s.posts = append(s.posts, text)
	return nil
}

// env bundles a Gazette on fake stores with seeding helpers.
type env struct {
	gz     *core.Gazette
	users  *fakeUserDB
	arts   *fakeArticleDB
	pubs   *fakePublisherDB
	subs   *fakeSubscriptionDB
	mailer *fakeMailer
	social *fakeSocial
}

func newEnv() *env {

	var users = &fakeUserDB{users: make(map[int]*fakeUser), passwords: make(map[int]string)}
	var arts = &fakeArticleDB{articles: make(map[int]*fakeArticle)}
	var pubs = &fakePublisherDB{publishers: make(map[int]*fakePublisher)}
	var subs = &fakeSubscriptionDB{users: users, subscriptions: make(map[pair]bool), follows: make(map[pair]bool)}
	var mailer = &fakeMailer{}
	var social = &fakeSocial{}

	var gz = &core.Gazette{
		ArticleDB:      arts,
		PublisherDB:    pubs,
		SubscriptionDB: subs,
		UserDB:         users,
		Mailer:         mailer,
		Social:         social,
		Config: core.Config{
			SiteName: "Testing Gazette",
			SiteURL:  "http://example.com",
		},
	}

	return &env{gz: gz, users: users, arts: arts, pubs: pubs, subs: subs, mailer: mailer, social: social}
}

func (e *env) addUser(mail string, role core.Role) *fakeUser {
	u, _ := e.users.InsertUser(mail, mail, role)
	return u.(*fakeUser)
}

func (e *env) addPublisher(name string) *fakePublisher {
	var p = &fakePublisher{id: len(e.pubs.publishers) + 1, name: name}
	e.pubs.publishers[p.id] = p
	return p
}

func (e *env) addArticle(author *fakeUser, publisherID int, status core.Status) *fakeArticle {
	var slug = fmt.Sprintf("some-title-%d", e.arts.nextID+1)
	a, _ := e.arts.InsertArticle("Some Title", slug, "Some content.", "Some content.", author.id, publisherID)
	a.(*fakeArticle).status = status
	return a.(*fakeArticle)
}
