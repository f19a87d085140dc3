package web

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var signupTmpl = tmpl(`<h1>Sign up</h1>
	<form method="post" style="max-width: 24rem; margin: auto;">
		<div class="form-group">
			<label>E-Mail</label>
			<input type="email" class="form-control" name="mail" value="{{ .Mail }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Display name (optional)</label>
			<input type="text" class="form-control" name="name" value="{{ .Name }}">
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password1" required>
		</div>
		<div class="form-group">
			<label>Repeat password</label>
			<input type="password" class="form-control" name="password2" required>
		</div>
		<div class="form-group">
			<label>Your role</label>
			<div class="form-check">
				<input class="form-check-input" type="radio" name="role" value="reader" id="role-reader" {{ if eq .Role "reader" }}checked{{ end }}>
				<label class="form-check-label" for="role-reader">Reader &mdash; subscribe to publishers and follow journalists</label>
			</div>
			<div class="form-check">
				<input class="form-check-input" type="radio" name="role" value="journalist" id="role-journalist" {{ if eq .Role "journalist" }}checked{{ end }}>
				<label class="form-check-label" for="role-journalist">Journalist &mdash; write articles and newsletters</label>
			</div>
			<div class="form-check">
				<input class="form-check-input" type="radio" name="role" value="editor" id="role-editor" {{ if eq .Role "editor" }}checked{{ end }}>
				<label class="form-check-label" for="role-editor">Editor &mdash; review submitted articles</label>
			</div>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="signup">Create account</button>
		</div>
	</form>`)

type signupData struct {
	*Route
	Mail string
	Name string
	Role string
}

func signup(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	var data = &signupData{
		Route: r,
		Role:  "reader",
	}

	if req.Method == http.MethodPost {

		data.Mail = req.PostFormValue("mail")
		data.Name = req.PostFormValue("name")
		data.Role = req.PostFormValue("role")

		if err := r.trySignup(req, data); err != nil {
			r.Danger(err)
			// keep POST data
		} else {
			r.Success("Your account has been created. Please log in.")
			r.SeeOther("/login")
			return nil
		}
	}

	return signupTmpl.Execute(w, data)
}

func (r *Route) trySignup(req *http.Request, data *signupData) error {

	role, err := core.ParseRole(data.Role)
	if err != nil {
		return errors.New("please select a role")
	}

	password1 := req.PostFormValue("password1")
	password2 := req.PostFormValue("password2")
	if password1 != password2 {
		return errors.New("passwords don't match")
	}

	_, err = r.gz.Register(data.Mail, data.Name, password1, role)
	return err
}
