package web

import (
	"math"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

// An articleTeaser is an article plus its resolved author and publisher,
// for listings. Author or Publisher can be nil.
type articleTeaser struct {
	core.DBArticle
	Author    core.DBUser
	Publisher core.DBPublisher
}

// teasers resolves authors and publishers of the given articles, looking
// every user and publisher up only once. Lookup errors leave the field nil,
// the templates cope with that.
func (r *Route) teasers(articles []core.DBArticle) []articleTeaser {

	var users = make(map[int]core.DBUser)
	var pubs = make(map[int]core.DBPublisher)

	var result = make([]articleTeaser, 0, len(articles))
	for _, a := range articles {

		if _, ok := users[a.AuthorID()]; !ok {
			u, err := r.gz.UserDB.GetUser(a.AuthorID())
			if err != nil {
				u = nil
			}
			users[a.AuthorID()] = u
		}

		if a.PublisherID() != 0 {
			if _, ok := pubs[a.PublisherID()]; !ok {
				p, err := r.gz.PublisherDB.GetPublisher(a.PublisherID())
				if err != nil {
					p = nil
				}
				pubs[a.PublisherID()] = p
			}
		}

		result = append(result, articleTeaser{
			DBArticle: a,
			Author:    users[a.AuthorID()],
			Publisher: pubs[a.PublisherID()],
		})
	}
	return result
}

// perPage returns the configured page size of listings.
func (r *Route) perPage() int {
	if pp := r.gz.Config.PerPage; pp > 0 {
		return pp
	}
	return 12
}

func numPages(count, perPage int) int {
	if pages := int(math.Ceil(float64(count) / float64(perPage))); pages > 1 {
		return pages
	}
	return 1
}

// paramPage reads the :page parameter, defaulting to 1.
func paramPage(params httprouter.Params) int {
	if page, _ := strconv.Atoi(params.ByName("page")); page > 1 {
		return page
	}
	return 1
}

func paramID(params httprouter.Params) (int, error) {
	return strconv.Atoi(params.ByName("id"))
}
