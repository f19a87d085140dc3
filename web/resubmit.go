package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func resubmit(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	a, err := r.gz.ArticleDB.GetArticle(id)
	if err != nil {
		return ErrNotFound
	}

	if err := r.gz.Resubmit(a, r.User); err != nil {
		return err
	}

	r.Success("%s is a draft again", a.Title())
	r.SeeOther("/edit/%d", a.ID())
	return nil
}
