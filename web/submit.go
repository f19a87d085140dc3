package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func submit(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	a, err := r.gz.ArticleDB.GetArticle(id)
	if err != nil {
		return ErrNotFound
	}

	if err := r.gz.Submit(a, r.User); err != nil {
		return err
	}

	r.Success("%s has been submitted for review", a.Title())
	r.SeeOther("/my/articles")
	return nil
}
