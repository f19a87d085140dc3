package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wansing/gazette/util"
)

// Statuses of an article. Transitions between them are managed exclusively
// by the workflow operations in workflow.go.
type Status string

const (
	Draft     Status = "draft"
	Pending   Status = "pending"
	Published Status = "published"
	Rejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case Draft, Pending, Published, Rejected:
		return true
	default:
		return false
	}
}

// Order of article listings.
type Order int

const (
	PublishedDesc Order = iota // newly published first, ties broken by ascending id
	CreatedDesc
	CreatedAsc
)

type DBArticle interface {
	ID() int
	Title() string
	Slug() string
	Content() string // CommonMark
	Excerpt() string
	AuthorID() int
	PublisherID() int // zero means independent
	Status() Status
	ReviewNote() string
	ReviewerID() int
	ReviewedAt() int64
	PublishedAt() int64
	Created() int64
	Notified() bool
}

// An ArticleFilter narrows article listings. Zero values mean "any".
type ArticleFilter struct {
	Status         Status
	AuthorID       int
	PublisherID    int
	ReaderID       int // articles from publishers the reader subscribed to or journalists they follow
	PublishedAfter int64
}

// The Set* methods write the new status conditionally on the current one,
// in a single statement. They return ErrInvalidTransition if the row was
// not in the expected status any more.
type ArticleDB interface {
	CountArticles(filter ArticleFilter) (int, error)
	DeleteArticle(a DBArticle) error
	GetArticle(id int) (DBArticle, error)
	GetArticleBySlug(slug string) (DBArticle, error)
	GetArticles(filter ArticleFilter, order Order, limit, offset int) ([]DBArticle, error)
	InsertArticle(title, slug, content, excerpt string, authorID, publisherID int) (DBArticle, error)
	SetDraft(a DBArticle) error // clears the review note
	SetNotified(a DBArticle) error
	SetPending(a DBArticle) error
	SetPublished(a DBArticle, reviewerID int, publishedAt int64) error
	SetRejected(a DBArticle, reviewerID int, reviewedAt int64, note string) error
	SlugTaken(slug string) (bool, error)
	UpdateArticle(a DBArticle, title, content, excerpt string, publisherID int) error
}

// uniqueSlug derives an URL slug from the title, appending a counter while
// the slug is taken.
func uniqueSlug(title string, taken func(string) (bool, error)) (string, error) {

	var base = util.Slugify(title)
	if base == "" {
		base = "untitled"
	}

	var slug = base
	for counter := 1; ; counter++ {
		ok, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !ok {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// deriveExcerpt falls back to the beginning of the rendered content.
func deriveExcerpt(content, excerpt string) string {
	if excerpt = strings.TrimSpace(excerpt); excerpt != "" {
		return excerpt
	}
	return util.Excerpt(string(RenderContent(content)), 400)
}

// CreateArticle inserts a new draft owned by the acting journalist.
func (g *Gazette) CreateArticle(actor DBUser, title, content, excerpt string, publisherID int) (DBArticle, error) {

	if actor == nil || actor.Role() != Journalist {
		return nil, ErrPermission
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title can't be empty")
	}

	if publisherID != 0 {
		if _, err := g.PublisherDB.GetPublisher(publisherID); err != nil {
			return nil, fmt.Errorf("publisher %d: %w", publisherID, err)
		}
	}

	slug, err := uniqueSlug(title, g.ArticleDB.SlugTaken)
	if err != nil {
		return nil, err
	}

	return g.ArticleDB.InsertArticle(title, slug, content, deriveExcerpt(content, excerpt), actor.ID(), publisherID)
}

// EditArticle updates title, content, excerpt and publisher. The author can
// edit while their article is a draft or rejected, editors can edit any
// article. The slug is kept stable so published links don't break.
func (g *Gazette) EditArticle(a DBArticle, actor DBUser, title, content, excerpt string, publisherID int) error {

	if actor == nil {
		return ErrPermission
	}
	if actor.Role() != Editor {
		if actor.ID() != a.AuthorID() || (a.Status() != Draft && a.Status() != Rejected) {
			return ErrPermission
		}
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return errors.New("title can't be empty")
	}

	if publisherID != 0 {
		if _, err := g.PublisherDB.GetPublisher(publisherID); err != nil {
			return fmt.Errorf("publisher %d: %w", publisherID, err)
		}
	}

	return g.ArticleDB.UpdateArticle(a, title, content, deriveExcerpt(content, excerpt), publisherID)
}

// RemoveArticle deletes an article. Editors can remove any article,
// journalists their own.
func (g *Gazette) RemoveArticle(a DBArticle, actor DBUser) error {
	if actor == nil {
		return ErrPermission
	}
	if actor.Role() != Editor && actor.ID() != a.AuthorID() {
		return ErrPermission
	}
	return g.ArticleDB.DeleteArticle(a)
}
