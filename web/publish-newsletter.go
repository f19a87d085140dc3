package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var publishNewsletterTmpl = tmpl(`<h1>Publish {{ .Newsletter.Title }}?</h1>

	<p>Publishing makes the newsletter public. It can't be edited afterwards.</p>

	<p>
		<a class="btn btn-secondary" href="my/newsletters">Cancel</a>
		<a class="btn btn-secondary" href="newsletter/{{ .Newsletter.Slug }}">Preview</a>
	</p>

	<form method="post">
		<input type="submit" class="btn btn-primary" name="publish" value="Publish">
	</form>`)

type publishNewsletterData struct {
	*Route
	Newsletter core.DBNewsletter
}

func publishNewsletter(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	id, err := paramID(params)
	if err != nil {
		return err
	}

	n, err := r.gz.NewsletterDB.GetNewsletter(id)
	if err != nil {
		return ErrNotFound
	}

	if r.User.ID() != n.AuthorID() {
		return ErrAuth
	}

	if req.PostFormValue("publish") != "" {
		if err := r.gz.PublishNewsletter(n, r.User); err == nil {
			r.Success("%s has been published", n.Title())
			r.SeeOther("/newsletter/%s", n.Slug())
			return nil
		} else {
			r.Danger(err)
		}
	}

	return publishNewsletterTmpl.Execute(w, &publishNewsletterData{
		Route:      r,
		Newsletter: n,
	})
}
