package web

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var ErrLogin = errors.New("wrong mail address or password")

var loginTmpl = tmpl(`<h1>Login</h1>
	<form method="post" style="max-width: 20rem; margin: auto;">
		<div class="form-group">
			<label>E-Mail</label>
			<input type="email" class="form-control" name="mail" value="{{ .Mail }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password" required>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="login">Login</button>
		</div>
		<p>No account yet? <a href="signup">Sign up</a>.</p>
	</form>`)

type loginData struct {
	*Route
	Mail string
}

func login(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	var mail string

	if req.Method == http.MethodPost {

		mail = req.PostFormValue("mail")
		password := req.PostFormValue("password")

		err := r.Login(mail, password)
		if err == nil {
			// role-based landing page
			switch {
			case r.IsReader():
				r.SeeOther("/feed")
			case r.IsEditor():
				r.SeeOther("/reviews")
			default:
				r.SeeOther("/dashboard")
			}
			return nil
		} else {
			r.Danger(ErrLogin)
			// keep POST data for mail field
		}
	}

	return loginTmpl.Execute(w, &loginData{
		Route: r,
		Mail:  mail,
	})
}
