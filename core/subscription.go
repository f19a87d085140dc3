package core

import "errors"

type SubscriptionDB interface {
	Follow(readerID, journalistID int) error
	GetActiveReaders() ([]DBUser, error) // readers with at least one subscription or follow
	GetFollowedJournalists(readerID int) ([]DBUser, error)
	GetFollowers(journalistID int) ([]DBUser, error)
	GetSubscribedPublishers(readerID int) ([]DBPublisher, error)
	GetSubscribers(publisherID int) ([]DBUser, error)
	IsFollowing(readerID, journalistID int) (bool, error)
	IsSubscribed(readerID, publisherID int) (bool, error)
	Subscribe(readerID, publisherID int) error
	Unfollow(readerID, journalistID int) error
	Unsubscribe(readerID, publisherID int) error
}

// ToggleSubscription subscribes a reader to a publisher, or unsubscribes
// them if they already were. It reports whether the reader is subscribed
// afterwards.
func (g *Gazette) ToggleSubscription(actor DBUser, p DBPublisher) (bool, error) {

	if actor == nil || actor.Role() != Reader {
		return false, ErrPermission
	}

	subscribed, err := g.SubscriptionDB.IsSubscribed(actor.ID(), p.ID())
	if err != nil {
		return false, err
	}

	if subscribed {
		return false, g.SubscriptionDB.Unsubscribe(actor.ID(), p.ID())
	}
	return true, g.SubscriptionDB.Subscribe(actor.ID(), p.ID())
}

// ToggleFollow follows a journalist, or unfollows them if the reader
// already did. It reports whether the reader follows the journalist
// afterwards.
func (g *Gazette) ToggleFollow(actor DBUser, journalist DBUser) (bool, error) {

	if actor == nil || actor.Role() != Reader {
		return false, ErrPermission
	}
	if journalist.Role() != Journalist {
		return false, errors.New("only journalists can be followed")
	}
	if actor.ID() == journalist.ID() {
		return false, errors.New("you can't follow yourself")
	}

	following, err := g.SubscriptionDB.IsFollowing(actor.ID(), journalist.ID())
	if err != nil {
		return false, err
	}

	if following {
		return false, g.SubscriptionDB.Unfollow(actor.ID(), journalist.ID())
	}
	return true, g.SubscriptionDB.Follow(actor.ID(), journalist.ID())
}
