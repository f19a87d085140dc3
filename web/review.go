package web

import (
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

// Approve and reject are separate forms because having multiple submit
// buttons in one form is tricky.
var reviewTmpl = tmpl(`<h1>Review: {{ .Article.Title }}</h1>

	<div class="article-meta mb-3">
		{{ with .Author }}by {{ JournalistLink . }}{{ end }}
		{{ with .Publisher }} &middot; for {{ PublisherLink . }}{{ else }} &middot; independent{{ end }}
		&middot; submitted {{ .FormatDateTime .Article.Created }}
		&middot; {{ StatusBadge .Article.Status }}
	</div>

	<div class="border rounded p-3 mb-3">
		{{ .Body }}
	</div>

	{{ if eq .Article.Status "pending" }}

		<div class="row">
			<div class="col-md-4">
				<form method="post">
					<button type="submit" class="btn btn-success" name="approve" value="approve">Approve and publish</button>
				</form>
			</div>
			<div class="col-md-8">
				<form method="post">
					<div class="form-group">
						<textarea class="form-control" name="reason" rows="3" placeholder="Reason for rejecting"></textarea>
					</div>
					<button type="submit" class="btn btn-danger" name="reject" value="reject">Reject</button>
				</form>
			</div>
		</div>

	{{ else }}
		<p><a href="reviews">Back to the review queue</a></p>
	{{ end }}`)

type reviewData struct {
	*Route
	Article   core.DBArticle
	Author    core.DBUser
	Publisher core.DBPublisher
}

func (data *reviewData) Body() template.HTML {
	return core.RenderContent(data.Article.Content())
}

func review(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	if !r.IsEditor() {
		return ErrAuth
	}

	id, err := paramID(params)
	if err != nil {
		return err
	}

	a, err := r.gz.ArticleDB.GetArticle(id)
	if err != nil {
		return ErrNotFound
	}

	if req.Method == http.MethodPost {

		switch {

		case req.PostFormValue("approve") != "":
			if err := r.gz.Approve(req.Context(), a, r.User); err == nil {
				r.Success("%s has been published", a.Title())
				r.SeeOther("/reviews")
				return nil
			} else {
				r.Danger(err)
			}

		case req.PostFormValue("reject") != "":
			if err := r.gz.Reject(a, r.User, req.PostFormValue("reason")); err == nil {
				r.Success("%s has been rejected", a.Title())
				r.SeeOther("/reviews")
				return nil
			} else {
				r.Danger(err)
			}
		}
	}

	var author core.DBUser
	if u, err := r.gz.UserDB.GetUser(a.AuthorID()); err == nil {
		author = u
	}

	var publisher core.DBPublisher
	if a.PublisherID() != 0 {
		if p, err := r.gz.PublisherDB.GetPublisher(a.PublisherID()); err == nil {
			publisher = p
		}
	}

	return reviewTmpl.Execute(w, &reviewData{
		Route:     r,
		Article:   a,
		Author:    author,
		Publisher: publisher,
	})
}
