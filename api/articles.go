package api

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

func (s *server) articles(req *http.Request, params httprouter.Params) (interface{}, error) {

	var page, pageSize = s.paging(req)

	count, err := s.gz.ArticleDB.CountArticles(core.ArticleFilter{Status: core.Published})
	if err != nil {
		return nil, err
	}

	articles, err := s.gz.ArticleDB.GetArticles(core.ArticleFilter{Status: core.Published}, core.PublishedDesc, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return s.articleList(articles, count, page, pageSize), nil
}

func (s *server) articleDetail(req *http.Request, params httprouter.Params) (interface{}, error) {

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return nil, errNotFound
	}

	a, err := s.gz.ArticleDB.GetArticle(id)
	if err != nil || a.Status() != core.Published {
		return nil, errNotFound
	}

	var users = make(map[int]*userJSON)
	var pubs = make(map[int]*publisherJSON)
	return s.article(a, true, users, pubs), nil
}

func (s *server) publisherArticles(req *http.Request, params httprouter.Params) (interface{}, error) {

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return nil, errNotFound
	}

	p, err := s.gz.PublisherDB.GetPublisher(id)
	if err != nil {
		return nil, errNotFound
	}

	var page, pageSize = s.paging(req)
	var filter = core.ArticleFilter{Status: core.Published, PublisherID: p.ID()}

	count, err := s.gz.ArticleDB.CountArticles(filter)
	if err != nil {
		return nil, err
	}

	articles, err := s.gz.ArticleDB.GetArticles(filter, core.PublishedDesc, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return s.articleList(articles, count, page, pageSize), nil
}

func (s *server) journalistArticles(req *http.Request, params httprouter.Params) (interface{}, error) {

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		return nil, errNotFound
	}

	u, err := s.gz.UserDB.GetUser(id)
	if err != nil || u.Role() != core.Journalist {
		return nil, errNotFound
	}

	var page, pageSize = s.paging(req)
	var filter = core.ArticleFilter{Status: core.Published, AuthorID: u.ID()}

	count, err := s.gz.ArticleDB.CountArticles(filter)
	if err != nil {
		return nil, err
	}

	articles, err := s.gz.ArticleDB.GetArticles(filter, core.PublishedDesc, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return s.articleList(articles, count, page, pageSize), nil
}
