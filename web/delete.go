package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var deleteTmpl = tmpl(`<h1>Delete {{ .Article.Title }}?</h1>

	<p>
		{{ StatusBadge .Article.Status }}
		&middot; created {{ .FormatDateTime .Article.Created }}
	</p>

	<p>
		<a class="btn btn-secondary" href="my/articles">Cancel</a>
	</p>

	<form method="post">
		<input type="submit" class="btn btn-danger" name="delete" value="Delete">
	</form>`)

type deleteData struct {
	*Route
	Article core.DBArticle
}

func del(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	a, err := r.gz.ArticleDB.GetArticle(id)
	if err != nil {
		return ErrNotFound
	}

	if !r.IsEditor() && r.User.ID() != a.AuthorID() {
		return ErrAuth
	}

	if req.PostFormValue("delete") != "" {
		if err := r.gz.RemoveArticle(a, r.User); err == nil {
			r.Success("%s has been deleted", a.Title())
			r.SeeOther("/my/articles")
			return nil
		} else {
			r.Danger(err)
		}
	}

	return deleteTmpl.Execute(w, &deleteData{
		Route:   r,
		Article: a,
	})
}
