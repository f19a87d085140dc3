package core

import (
	"errors"

	"github.com/wansing/gazette/logger"
)

var ErrInvalidKey = errors.New("invalid or inactive API key")

// An api client grants a third-party application access to the personalized
// feed of its linked reader account. The key is an opaque random string.
type DBApiClient interface {
	ID() int
	Name() string
	Key() string
	UserID() int
	Active() bool
	Created() int64
	LastUsed() int64 // zero if never used
}

type ApiClientDB interface {
	GetClientByKey(key string) (DBApiClient, error)
	GetClients(userID int) ([]DBApiClient, error)
	InsertClient(name string, userID int) (DBApiClient, error) // generates the key
	SetClientActive(c DBApiClient, active bool) error
	TouchClient(c DBApiClient, lastUsed int64) error
}

// CreateClient registers an api client for a reader account.
func (g *Gazette) CreateClient(name string, u DBUser) (DBApiClient, error) {
	if u.Role() != Reader {
		return nil, errors.New("api clients must be linked to a reader account")
	}
	return g.ApiClientDB.InsertClient(name, u.ID())
}

// AuthenticateKey resolves an active api client and its linked reader by
// key and touches the client's last-used timestamp.
func (g *Gazette) AuthenticateKey(key string) (DBApiClient, DBUser, error) {

	if key == "" {
		return nil, nil, ErrInvalidKey
	}

	client, err := g.ApiClientDB.GetClientByKey(key)
	if err != nil {
		return nil, nil, ErrInvalidKey
	}
	if !client.Active() {
		return nil, nil, ErrInvalidKey
	}

	user, err := g.UserDB.GetUser(client.UserID())
	if err != nil {
		return nil, nil, err
	}

	if err := g.ApiClientDB.TouchClient(client, now()); err != nil {
		logger.Log.WithField("client", client.ID()).Warnf("touching api client: %v", err)
	}

	return client, user, nil
}
