package core

import (
	"errors"
	"fmt"
	"strings"
)

// Every user bears exactly one role.
type Role int

const (
	Reader     Role = 1 // subscribes to publishers, follows journalists
	Journalist Role = 2 // writes articles and newsletters
	Editor     Role = 3 // reviews submitted articles
)

func (role Role) String() string {
	switch role {
	case Reader:
		return "reader"
	case Journalist:
		return "journalist"
	case Editor:
		return "editor"
	}
	return "unknown"
}

func (role Role) Valid() bool {
	switch role {
	case Reader, Journalist, Editor:
		return true
	default:
		return false
	}
}

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reader":
		return Reader, nil
	case "journalist":
		return Journalist, nil
	case "editor":
		return Editor, nil
	}
	return 0, fmt.Errorf("unknown role: %s", s)
}

type DBUser interface {
	ID() int
	Mail() string // unique, used for logging in
	Name() string // display name
	Role() Role
	Bio() string
	Created() int64
}

type UserDB interface {
	ChangePassword(u DBUser, old, new string) error
	GetUser(id int) (DBUser, error)
	GetUserByMail(mail string) (DBUser, error)
	InsertUser(mail, name string, role Role) (DBUser, error)
	LoginUser(mail, password string) (DBUser, error)
	SetBio(u DBUser, bio string) error
	SetPassword(u DBUser, password string) error
}

var ErrEmptyPassword = errors.New("refusing to set empty password")

// Register creates an account with exactly one role and sets its password.
// If the display name is empty, the local part of the mail address is taken.
func (g *Gazette) Register(mail, name, password string, role Role) (DBUser, error) {

	mail = strings.ToLower(strings.TrimSpace(mail))
	if at := strings.Index(mail, "@"); at < 1 || at == len(mail)-1 {
		return nil, errors.New("invalid mail address")
	}

	if name = strings.TrimSpace(name); name == "" {
		name = mail[:strings.Index(mail, "@")]
	}

	if !role.Valid() {
		return nil, fmt.Errorf("unknown role: %d", role)
	}

	if password == "" {
		return nil, ErrEmptyPassword
	}

	u, err := g.UserDB.InsertUser(mail, name, role)
	if err != nil {
		return nil, err
	}

	return u, g.UserDB.SetPassword(u, password)
}

// SetPassword shadows UserDB.SetPassword.
func (g *Gazette) SetPassword(u DBUser, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	return g.UserDB.SetPassword(u, password)
}
