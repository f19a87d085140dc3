package core

import (
	"errors"
	"strings"
)

type DBPublisher interface {
	ID() int
	Name() string
	Description() string
	Website() string
	Created() int64
}

type PublisherDB interface {
	AddStaff(p DBPublisher, u DBUser) error
	GetAllPublishers(limit, offset int) ([]DBPublisher, error)
	GetPublisher(id int) (DBPublisher, error)
	GetPublisherByName(name string) (DBPublisher, error)
	GetPublishersOf(u DBUser) ([]DBPublisher, error)
	GetStaff(p DBPublisher) ([]DBUser, error)
	InsertPublisher(name, description, website string) (DBPublisher, error)
	RemoveStaff(p DBPublisher, u DBUser) error
}

// InsertPublisher shadows PublisherDB.InsertPublisher.
func (g *Gazette) InsertPublisher(name, description, website string) (DBPublisher, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("publisher name can't be empty")
	}
	return g.PublisherDB.InsertPublisher(name, strings.TrimSpace(description), strings.TrimSpace(website))
}

// AddStaff shadows PublisherDB.AddStaff, admitting journalists and editors only.
func (g *Gazette) AddStaff(p DBPublisher, u DBUser) error {
	if u.Role() != Journalist && u.Role() != Editor {
		return errors.New("only journalists and editors can join a publisher")
	}
	return g.PublisherDB.AddStaff(p, u)
}
