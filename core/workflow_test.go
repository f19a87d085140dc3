package core_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"github.com/wansing/gazette/core"
)

func TestSubmit(t *testing.T) {

	var e = newEnv()
	var author = e.addUser("author@example.com", core.Journalist)
	var other = e.addUser("other@example.com", core.Journalist)
	var editor = e.addUser("editor@example.com", core.Editor)

	t.Run("only the author can submit", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Draft)
		require.ErrorIs(t, e.gz.Submit(a, other), core.ErrPermission)
		require.ErrorIs(t, e.gz.Submit(a, editor), core.ErrPermission)
		require.ErrorIs(t, e.gz.Submit(a, nil), core.ErrPermission)
		require.Equal(t, core.Draft, a.Status())
	})

	t.Run("draft becomes pending", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Draft)
		require.NoError(t, e.gz.Submit(a, author))
		require.Equal(t, core.Pending, a.Status())
	})

	t.Run("submitting twice fails", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Draft)
		require.NoError(t, e.gz.Submit(a, author))
		require.ErrorIs(t, e.gz.Submit(a, author), core.ErrInvalidTransition)
	})

	t.Run("published articles can't be submitted", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Published)
		require.ErrorIs(t, e.gz.Submit(a, author), core.ErrInvalidTransition)
	})
}

func TestApprove(t *testing.T) {

	var e = newEnv()
	var author = e.addUser("author@example.com", core.Journalist)
	var editor = e.addUser("editor@example.com", core.Editor)
	var reader = e.addUser("reader@example.com", core.Reader)

	t.Run("only editors can approve", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Pending)
		require.ErrorIs(t, e.gz.Approve(context.Background(), a, author), core.ErrPermission)
		require.ErrorIs(t, e.gz.Approve(context.Background(), a, reader), core.ErrPermission)
		require.Equal(t, core.Pending, a.Status())
	})

	t.Run("pending becomes published", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Pending)
		require.NoError(t, e.gz.Approve(context.Background(), a, editor))
		require.Equal(t, core.Published, a.Status())
		require.NotZero(t, a.PublishedAt())
		require.Equal(t, editor.ID(), a.ReviewerID())
	})

	t.Run("approving twice fails", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Pending)
		require.NoError(t, e.gz.Approve(context.Background(), a, editor))
		require.ErrorIs(t, e.gz.Approve(context.Background(), a, editor), core.ErrInvalidTransition)
	})

	t.Run("drafts can't be approved", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Draft)
		require.ErrorIs(t, e.gz.Approve(context.Background(), a, editor), core.ErrInvalidTransition)
	})
}

func TestApproveNotifies(t *testing.T) {

	var e = newEnv()
	var author = e.addUser("author@example.com", core.Journalist)
	var editor = e.addUser("editor@example.com", core.Editor)
	var publisher = e.addPublisher("The Daily")

	// one subscriber, one follower, one reader who is both
	var subscriber = e.addUser("subscriber@example.com", core.Reader)
	var follower = e.addUser("follower@example.com", core.Reader)
	var both = e.addUser("both@example.com", core.Reader)
	e.subs.Subscribe(subscriber.ID(), publisher.ID())
	e.subs.Subscribe(both.ID(), publisher.ID())
	e.subs.Follow(follower.ID(), author.ID())
	e.subs.Follow(both.ID(), author.ID())

	var a = e.addArticle(author, publisher.ID(), core.Pending)
	require.NoError(t, e.gz.Approve(context.Background(), a, editor))

	t.Run("one mail batch with deduplicated recipients", func(t *testing.T) {
		require.Len(t, e.mailer.sent, 1)
		require.ElementsMatch(t,
			[]string{"subscriber@example.com", "follower@example.com", "both@example.com"},
			e.mailer.sent[0].recipients,
		)
		require.Contains(t, e.mailer.sent[0].subject, a.Title())
		require.Contains(t, e.mailer.sent[0].body, "http://example.com/article/"+a.Slug())
	})

	t.Run("one social post with title and link", func(t *testing.T) {
		require.Len(t, e.social.posts, 1)
		require.Contains(t, e.social.posts[0], a.Title())
		require.Contains(t, e.social.posts[0], "http://example.com/article/"+a.Slug())
	})

	t.Run("article is marked notified", func(t *testing.T) {
		require.True(t, a.Notified())
	})
}

func TestApproveIndependentArticleNotifiesFollowersOnly(t *testing.T) {

	var e = newEnv()
	var author = e.addUser("author@example.com", core.Journalist)
	var editor = e.addUser("editor@example.com", core.Editor)
	var publisher = e.addPublisher("The Daily")

	var subscriber = e.addUser("subscriber@example.com", core.Reader)
	var follower = e.addUser("follower@example.com", core.Reader)
	e.subs.Subscribe(subscriber.ID(), publisher.ID())
	e.subs.Follow(follower.ID(), author.ID())

	var a = e.addArticle(author, 0, core.Pending)
	require.NoError(t, e.gz.Approve(context.Background(), a, editor))

	require.Len(t, e.mailer.sent, 1)
	require.Equal(t, []string{"follower@example.com"}, e.mailer.sent[0].recipients)
}

func TestApproveSurvivesDeliveryFailures(t *testing.T) {

	t.Run("failing mailer", func(t *testing.T) {
		var e = newEnv()
		var author = e.addUser("author@example.com", core.Journalist)
		var editor = e.addUser("editor@example.com", core.Editor)
		var follower = e.addUser("follower@example.com", core.Reader)
		e.subs.Follow(follower.ID(), author.ID())
		e.mailer.failAll = true

		var a = e.addArticle(author, 0, core.Pending)
		require.NoError(t, e.gz.Approve(context.Background(), a, editor))
		require.Equal(t, core.Published, a.Status())
	})

	t.Run("failing social client", func(t *testing.T) {
		var e = newEnv()
		var author = e.addUser("author@example.com", core.Journalist)
		var editor = e.addUser("editor@example.com", core.Editor)
		e.social.err = context.DeadlineExceeded

		var a = e.addArticle(author, 0, core.Pending)
		require.NoError(t, e.gz.Approve(context.Background(), a, editor))
		require.Equal(t, core.Published, a.Status())
	})

	t.Run("no mailer and no social client configured", func(t *testing.T) {
		var e = newEnv()
		var author = e.addUser("author@example.com", core.Journalist)
		var editor = e.addUser("editor@example.com", core.Editor)
		var follower = e.addUser("follower@example.com", core.Reader)
		e.subs.Follow(follower.ID(), author.ID())
		e.gz.Mailer = nil
		e.gz.Social = nil

		var a = e.addArticle(author, 0, core.Pending)
		require.NoError(t, e.gz.Approve(context.Background(), a, editor))
		require.Equal(t, core.Published, a.Status())
	})
}

func TestSocialPostIsTruncated(t *testing.T) {

	var e = newEnv()
	var author = e.addUser("author@example.com", core.Journalist)
	var editor = e.addUser("editor@example.com", core.Editor)

	var a = e.addArticle(author, 0, core.Pending)
	e.arts.articles[a.ID()].title = strings.Repeat("Säensätiönal! ", 40)

	require.NoError(t, e.gz.Approve(context.Background(), a, editor))
	require.Len(t, e.social.posts, 1)
	require.LessOrEqual(t, utf8.RuneCountInString(e.social.posts[0]), 280)
}

func TestReject(t *testing.T) {

	var e = newEnv()
	var author = e.addUser("author@example.com", core.Journalist)
	var editor = e.addUser("editor@example.com", core.Editor)

	t.Run("requires a reason", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Pending)
		require.Error(t, e.gz.Reject(a, editor, "   "))
		require.Equal(t, core.Pending, a.Status())
	})

	t.Run("only editors can reject", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Pending)
		require.ErrorIs(t, e.gz.Reject(a, author, "not good enough"), core.ErrPermission)
	})

	t.Run("pending becomes rejected with note", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Pending)
		require.NoError(t, e.gz.Reject(a, editor, "needs more sources"))
		require.Equal(t, core.Rejected, a.Status())
		require.Equal(t, "needs more sources", a.ReviewNote())
		require.Equal(t, editor.ID(), a.ReviewerID())
		require.NotZero(t, a.ReviewedAt())
	})

	t.Run("published articles can't be rejected", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Published)
		require.ErrorIs(t, e.gz.Reject(a, editor, "too late"), core.ErrInvalidTransition)
	})
}

func TestResubmit(t *testing.T) {

	var e = newEnv()
	var author = e.addUser("author@example.com", core.Journalist)
	var other = e.addUser("other@example.com", core.Journalist)
	var editor = e.addUser("editor@example.com", core.Editor)

	t.Run("rejected becomes draft and the note is cleared", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Pending)
		require.NoError(t, e.gz.Reject(a, editor, "needs more sources"))
		require.NoError(t, e.gz.Resubmit(a, author))
		require.Equal(t, core.Draft, a.Status())
		require.Empty(t, a.ReviewNote())
	})

	t.Run("only the author can resubmit", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Rejected)
		require.ErrorIs(t, e.gz.Resubmit(a, other), core.ErrPermission)
		require.ErrorIs(t, e.gz.Resubmit(a, editor), core.ErrPermission)
	})

	t.Run("drafts can't be resubmitted", func(t *testing.T) {
		var a = e.addArticle(author, 0, core.Draft)
		require.ErrorIs(t, e.gz.Resubmit(a, author), core.ErrInvalidTransition)
	})
}

// The full lifecycle: write, submit, reject, rework, submit again, publish.
func TestWorkflowRoundtrip(t *testing.T) {

	var e = newEnv()
	var author = e.addUser("author@example.com", core.Journalist)
	var editor = e.addUser("editor@example.com", core.Editor)

	a, err := e.gz.CreateArticle(author, "Breaking News", "Something happened.", "", 0)
	require.NoError(t, err)
	require.Equal(t, core.Draft, a.Status())

	require.NoError(t, e.gz.Submit(a, author))
	require.NoError(t, e.gz.Reject(a, editor, "thin on facts"))
	require.NoError(t, e.gz.Resubmit(a, author))
	require.NoError(t, e.gz.EditArticle(a, author, "Breaking News", "Something happened, with details.", "", 0))
	require.NoError(t, e.gz.Submit(a, author))
	require.NoError(t, e.gz.Approve(context.Background(), a, editor))

	require.Equal(t, core.Published, a.Status())
	require.NotZero(t, a.PublishedAt())
}
