// Package api serves the JSON interface. All endpoints are read-only,
// errors are reported as {"error": ...} with a matching status code.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var errNotFound = errors.New("not found")
var errUnauthorized = errors.New("authentication required")

type server struct {
	gz *core.Gazette
}

// NewRouter returns the API routes, to be mounted under a prefix like /api.
func NewRouter(gz *core.Gazette) http.Handler {

	var s = &server{gz: gz}

	var router = httprouter.New()
	router.GET("/articles", s.handle(s.articles))
	router.GET("/articles/:id", s.handle(s.articleDetail))
	router.GET("/feed", s.handle(s.feed))
	router.GET("/feed/subscribed", s.handle(s.feedSubscribed))
	router.GET("/journalists/:id/articles", s.handle(s.journalistArticles))
	router.GET("/publishers/:id/articles", s.handle(s.publisherArticles))
	return router
}

// handle wraps an endpoint func into an httprouter handle which encodes the
// result, or the error, as JSON.
func (s *server) handle(f func(req *http.Request, params httprouter.Params) (interface{}, error)) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		result, err := f(req, params)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func writeError(w http.ResponseWriter, err error) {

	var status int
	switch {
	case errors.Is(err, errNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errUnauthorized), errors.Is(err, core.ErrInvalidKey), errors.Is(err, core.ErrPermission):
		status = http.StatusUnauthorized
	default:
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorJSON{Error: err.Error()})
}

const maxPageSize = 100

// paging reads the page and page_size query parameters.
func (s *server) paging(req *http.Request) (page, pageSize int) {

	page, _ = strconv.Atoi(req.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(req.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = s.gz.Config.PerPage
	}
	if pageSize < 1 {
		pageSize = 12
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return
}

// sessionUser returns the logged-in user, like the HTML interface resolves
// it from the session cookie.
func (s *server) sessionUser(req *http.Request) (core.DBUser, error) {
	if uid := s.gz.SessionManager.GetInt(req.Context(), "uid"); uid != 0 {
		return s.gz.UserDB.GetUser(uid)
	}
	return nil, errUnauthorized
}

// keyUser authenticates an api client, taking the key from the X-API-Key
// header or from the api_key query parameter.
func (s *server) keyUser(req *http.Request) (core.DBUser, error) {

	var key = req.Header.Get("X-API-Key")
	if key == "" {
		key = req.URL.Query().Get("api_key")
	}

	_, user, err := s.gz.AuthenticateKey(key)
	return user, err
}
