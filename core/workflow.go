package core

import (
	"context"
	"errors"
	"strings"

	"github.com/wansing/gazette/metrics"
)

// The article workflow:
//
//	draft -> pending -> published
//	                 -> rejected -> draft
//
// Published is terminal. Each operation checks the permission and the
// expected current status up front, then writes the new status with a
// conditional update. If a concurrent request got there first, the update
// affects no row and the store reports ErrInvalidTransition, so duplicate
// transitions lose.

var ErrPermission = errors.New("permission denied")
var ErrInvalidTransition = errors.New("invalid status transition")

// Submit hands a draft over for review. Only the author can submit.
func (g *Gazette) Submit(a DBArticle, actor DBUser) error {
	if actor == nil || actor.ID() != a.AuthorID() {
		return ErrPermission
	}
	if a.Status() != Draft {
		return ErrInvalidTransition
	}
	if err := g.ArticleDB.SetPending(a); err != nil {
		return err
	}
	metrics.Transitions.WithLabelValues(string(Pending)).Inc()
	return nil
}

// Approve publishes a pending article and notifies subscribers and
// followers. Notification failures are logged but never revert the
// publication.
func (g *Gazette) Approve(ctx context.Context, a DBArticle, actor DBUser) error {
	if actor == nil || actor.Role() != Editor {
		return ErrPermission
	}
	if a.Status() != Pending {
		return ErrInvalidTransition
	}
	if err := g.ArticleDB.SetPublished(a, actor.ID(), now()); err != nil {
		return err
	}
	metrics.Transitions.WithLabelValues(string(Published)).Inc()
	g.notifyPublished(ctx, a)
	return nil
}

// Reject declines a pending article, keeping the reason for the author.
func (g *Gazette) Reject(a DBArticle, actor DBUser, reason string) error {
	if actor == nil || actor.Role() != Editor {
		return ErrPermission
	}
	if a.Status() != Pending {
		return ErrInvalidTransition
	}
	if reason = strings.TrimSpace(reason); reason == "" {
		return errors.New("rejecting requires a reason")
	}
	if err := g.ArticleDB.SetRejected(a, actor.ID(), now(), reason); err != nil {
		return err
	}
	metrics.Transitions.WithLabelValues(string(Rejected)).Inc()
	return nil
}

// Resubmit turns a rejected article back into a draft, so the author can
// rework and submit it again.
func (g *Gazette) Resubmit(a DBArticle, actor DBUser) error {
	if actor == nil || actor.ID() != a.AuthorID() {
		return ErrPermission
	}
	if a.Status() != Rejected {
		return ErrInvalidTransition
	}
	if err := g.ArticleDB.SetDraft(a); err != nil {
		return err
	}
	metrics.Transitions.WithLabelValues(string(Draft)).Inc()
	return nil
}
