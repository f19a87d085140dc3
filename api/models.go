package api

import (
	"github.com/wansing/gazette/core"
)

// JSON representations. Authors and publishers are nested and minimal,
// content is included in detail responses only.

type userJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type publisherJSON struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

type articleJSON struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Excerpt     string         `json:"excerpt"`
	Content     string         `json:"content,omitempty"`
	Author      *userJSON      `json:"author"`
	Publisher   *publisherJSON `json:"publisher"`
	PublishedAt int64          `json:"published_at"`
	CreatedAt   int64          `json:"created_at"`
	URL         string         `json:"url"`
}

type paginationJSON struct {
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

type articleListJSON struct {
	Items      []articleJSON  `json:"items"`
	Pagination paginationJSON `json:"pagination"`
}

type errorJSON struct {
	Error string `json:"error"`
}

// article converts a stored article, resolving author and publisher through
// the given caches.
func (s *server) article(a core.DBArticle, withContent bool, users map[int]*userJSON, pubs map[int]*publisherJSON) articleJSON {

	if _, ok := users[a.AuthorID()]; !ok {
		var author *userJSON
		if u, err := s.gz.UserDB.GetUser(a.AuthorID()); err == nil {
			author = &userJSON{ID: u.ID(), Name: u.Name()}
		}
		users[a.AuthorID()] = author
	}

	if a.PublisherID() != 0 {
		if _, ok := pubs[a.PublisherID()]; !ok {
			var publisher *publisherJSON
			if p, err := s.gz.PublisherDB.GetPublisher(a.PublisherID()); err == nil {
				publisher = &publisherJSON{ID: p.ID(), Name: p.Name(), Description: p.Description(), Website: p.Website()}
			}
			pubs[a.PublisherID()] = publisher
		}
	}

	var result = articleJSON{
		ID:          a.ID(),
		Title:       a.Title(),
		Slug:        a.Slug(),
		Excerpt:     a.Excerpt(),
		Author:      users[a.AuthorID()],
		Publisher:   pubs[a.PublisherID()],
		PublishedAt: a.PublishedAt(),
		CreatedAt:   a.Created(),
		URL:         s.gz.Config.SiteURL + "/article/" + a.Slug(),
	}
	if withContent {
		result.Content = a.Content()
	}
	return result
}

// articleList converts a page of stored articles.
func (s *server) articleList(articles []core.DBArticle, totalItems, page, pageSize int) articleListJSON {

	var users = make(map[int]*userJSON)
	var pubs = make(map[int]*publisherJSON)

	var items = make([]articleJSON, 0, len(articles))
	for _, a := range articles {
		items = append(items, s.article(a, false, users, pubs))
	}

	var totalPages = totalItems / pageSize
	if totalItems%pageSize != 0 {
		totalPages++
	}

	return articleListJSON{
		Items: items,
		Pagination: paginationJSON{
			TotalItems:   totalItems,
			TotalPages:   totalPages,
			CurrentPage:  page,
			ItemsPerPage: pageSize,
		},
	}
}
