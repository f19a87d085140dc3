package core

import (
	"errors"
	"fmt"
	"strings"
)

// Newsletters go from draft straight to published, there is no review gate.
type DBNewsletter interface {
	ID() int
	Title() string
	Slug() string
	Content() string // CommonMark
	Excerpt() string
	AuthorID() int
	PublisherID() int // zero means independent
	Status() Status   // Draft or Published
	PublishedAt() int64
	Created() int64
}

type NewsletterDB interface {
	CountNewsletters(status Status, authorID int) (int, error)
	GetNewsletter(id int) (DBNewsletter, error)
	GetNewsletterBySlug(slug string) (DBNewsletter, error)
	GetNewsletters(status Status, authorID int, limit, offset int) ([]DBNewsletter, error)
	InsertNewsletter(title, slug, content, excerpt string, authorID, publisherID int) (DBNewsletter, error)
	NewsletterSlugTaken(slug string) (bool, error)
	SetNewsletterPublished(n DBNewsletter, publishedAt int64) error // conditional on draft status
	UpdateNewsletter(n DBNewsletter, title, content, excerpt string, publisherID int) error
}

// CreateNewsletter inserts a new draft newsletter owned by the acting
// journalist.
func (g *Gazette) CreateNewsletter(actor DBUser, title, content, excerpt string, publisherID int) (DBNewsletter, error) {

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

	slug, err := uniqueSlug(title, g.NewsletterDB.NewsletterSlugTaken)
	if err != nil {
		return nil, err
	}

	return g.NewsletterDB.InsertNewsletter(title, slug, content, deriveExcerpt(content, excerpt), actor.ID(), publisherID)
}

// EditNewsletter updates a newsletter. Only the author can edit, and only
// while it is a draft.
func (g *Gazette) EditNewsletter(n DBNewsletter, actor DBUser, title, content, excerpt string, publisherID int) error {

	if actor == nil || actor.ID() != n.AuthorID() {
		return ErrPermission
	}
	if n.Status() != Draft {
		return errors.New("published newsletters can't be edited")
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

	return g.NewsletterDB.UpdateNewsletter(n, title, content, deriveExcerpt(content, excerpt), publisherID)
}

// PublishNewsletter makes a draft newsletter public. Only the author can
// publish. Like the article transitions, publishing is first-wins.
func (g *Gazette) PublishNewsletter(n DBNewsletter, actor DBUser) error {
	if actor == nil || actor.ID() != n.AuthorID() {
		return ErrPermission
	}
	if n.Status() != Draft {
		return ErrInvalidTransition
	}
	return g.NewsletterDB.SetNewsletterPublished(n, now())
}
