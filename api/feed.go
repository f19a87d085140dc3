package api

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

// feed serves the personalized feed of the session user.
func (s *server) feed(req *http.Request, params httprouter.Params) (interface{}, error) {

	user, err := s.sessionUser(req)
	if err != nil {
		return nil, err
	}

	return s.userFeed(req, user)
}

// feedSubscribed serves the personalized feed of the reader linked to an
// api client, authenticated by key.
func (s *server) feedSubscribed(req *http.Request, params httprouter.Params) (interface{}, error) {

	user, err := s.keyUser(req)
	if err != nil {
		return nil, err
	}

	return s.userFeed(req, user)
}

func (s *server) userFeed(req *http.Request, user core.DBUser) (interface{}, error) {

	if user.Role() != core.Reader {
		return nil, core.ErrPermission
	}

	var page, pageSize = s.paging(req)

	count, err := s.gz.CountFeed(user)
	if err != nil {
		return nil, err
	}

	articles, err := s.gz.Feed(user, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return s.articleList(articles, count, page, pageSize), nil
}
