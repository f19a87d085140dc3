package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/wansing/gazette/logger"
	"github.com/wansing/gazette/metrics"
	"github.com/wansing/gazette/util"
)

// A Mailer delivers notification mails, one per recipient. Implementations
// are best-effort, a failing recipient must not abort the remaining sends.
type Mailer interface {
	// SendEach returns the addresses that could not be delivered to.
	// A non-nil error means delivery failed as a whole.
	SendEach(ctx context.Context, recipients []string, subject, body string) ([]string, error)
}

// A SocialPoster announces a text on an external social platform.
type SocialPoster interface {
	Post(ctx context.Context, text string) error
}

const socialMaxRunes = 280

// notifyPublished fans a freshly published article out: one mail to each
// reader subscribed to its publisher or following its author (deduplicated),
// plus a post on the social platform if one is configured. Everything here
// is best-effort, failures are logged and counted while the article stays
// published.
func (g *Gazette) notifyPublished(ctx context.Context, a DBArticle) {

	if a.Notified() {
		return
	}

	var recipients = make(map[int]DBUser)

	if a.PublisherID() != 0 {
		subscribers, err := g.SubscriptionDB.GetSubscribers(a.PublisherID())
		if err != nil {
			logger.Log.WithField("article", a.ID()).Warnf("resolving subscribers: %v", err)
		}
		for _, u := range subscribers {
			recipients[u.ID()] = u
		}
	}

	followers, err := g.SubscriptionDB.GetFollowers(a.AuthorID())
	if err != nil {
		logger.Log.WithField("article", a.ID()).Warnf("resolving followers: %v", err)
	}
	for _, u := range followers {
		recipients[u.ID()] = u
	}

	var authorName = fmt.Sprintf("journalist %d", a.AuthorID())
	if author, err := g.UserDB.GetUser(a.AuthorID()); err == nil {
		authorName = author.Name()
	}

	var link = g.Config.SiteURL + "/article/" + a.Slug()

	if len(recipients) > 0 {
		if g.Mailer == nil {
			logger.Log.WithField("article", a.ID()).Info("mail is not configured, skipping notifications")
		} else {
			var addrs = make([]string, 0, len(recipients))
			for _, u := range recipients {
				addrs = append(addrs, u.Mail())
			}
			sort.Strings(addrs)

			var subject = "New Article: " + a.Title()
			var body = fmt.Sprintf(
				"A new article '%s' by %s has been published.\n\nRead it here: %s\n\nBest regards,\n%s",
				a.Title(), authorName, link, g.Config.SiteName,
			)

			failed, err := g.Mailer.SendEach(ctx, addrs, subject, body)
			metrics.MailsSent.Add(float64(len(addrs) - len(failed)))
			metrics.MailFailures.Add(float64(len(failed)))
			switch {
			case err != nil:
				logger.Log.WithFields(logger.Fields{"article": a.ID(), "failed": len(failed)}).Warnf("notification mails: %v", err)
			case len(failed) > 0:
				logger.Log.WithFields(logger.Fields{"article": a.ID(), "failed": len(failed)}).Warn("some notification mails were not delivered")
			default:
				logger.Log.WithFields(logger.Fields{"article": a.ID(), "recipients": len(addrs)}).Info("notification mails sent")
			}
		}
	}

	if g.Social != nil {
		var text = util.Trunc(fmt.Sprintf("New article: %s\nby %s\n%s\n#News #Journalism", a.Title(), authorName, link), socialMaxRunes)
		metrics.SocialPosts.Inc()
		if err := g.Social.Post(ctx, text); err != nil {
			metrics.SocialFailures.Inc()
			logger.Log.WithField("article", a.ID()).Warnf("social post: %v", err)
		}
	}

	if err := g.ArticleDB.SetNotified(a); err != nil {
		logger.Log.WithField("article", a.ID()).Warnf("marking article as notified: %v", err)
	}
}
