package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/gazette/core"
)

var accountTmpl = tmpl(`<h1>Account</h1>

	<p>
		{{ .User.Mail }} &middot; {{ .User.Role }}
	</p>

	<h2>Profile</h2>

	<form method="post">
		<div class="form-group">
			<textarea class="form-control" name="bio" rows="4" placeholder="Tell the readers something about yourself">{{ .User.Bio }}</textarea>
		</div>
		<button type="submit" class="btn btn-primary" name="submit_bio" value="submit_bio">Save profile</button>
	</form>

	<h2 class="mt-4">Change Password</h2>

	<form method="post">
		<div class="form-group">
			<input type="password" class="form-control" name="old_password" placeholder="Current password">
		</div>
		<div class="form-group">
			<input type="password" class="form-control" name="new_password1" placeholder="New password">
		</div>
		<div class="form-group">
			<input type="password" class="form-control" name="new_password2" placeholder="Repeat new password">
		</div>
		<button type="submit" class="btn btn-primary" name="submit_password" value="submit_password">Change password</button>
	</form>

	{{ if .IsReader }}

		<h2 class="mt-4">API Clients</h2>

		<p>API clients can fetch your personalized feed through the REST API, see <code>GET /api/feed/subscribed</code>.</p>

		<table class="table table-sm">
			<thead>
				<tr>
					<th>Name</th>
					<th>Key</th>
					<th>Last used</th>
					<th></th>
				</tr>
			</thead>
			<tbody>
				{{ range .Clients }}
					<tr>
						<td>{{ .Name }}</td>
						<td><code>{{ .Key }}</code></td>
						<td>
							{{ if .LastUsed }}
								{{ $.FormatDateTime .LastUsed }}
							{{ else }}
								never
							{{ end }}
						</td>
						<td class="text-right">
							<form method="post">
								<input type="hidden" name="client" value="{{ .ID }}">
								{{ if .Active }}
									<button type="submit" class="btn btn-sm btn-secondary" name="submit_deactivate" value="submit_deactivate">Deactivate</button>
								{{ else }}
									<button type="submit" class="btn btn-sm btn-primary" name="submit_activate" value="submit_activate">Activate</button>
								{{ end }}
							</form>
						</td>
					</tr>
				{{ else }}
					<tr>
						<td colspan="4">No API clients yet.</td>
					</tr>
				{{ end }}
			</tbody>
		</table>

		<form method="post" class="form-inline">
			<div class="form-group">
				<input class="form-control" name="client_name" placeholder="Client name">
				<button type="submit" class="btn btn-primary mx-sm-3" name="submit_client" value="submit_client">Create API client</button>
			</div>
		</form>

	{{ end }}`)

type accountData struct {
	*Route
}

func (data *accountData) Clients() ([]core.DBApiClient, error) {
	return data.gz.ApiClientDB.GetClients(data.User.ID())
}

// ownClient loads an api client from the "client" form value, asserting that
// it belongs to the logged-in user.
func (r *Route) ownClient(req *http.Request) (core.DBApiClient, error) {

	id, err := strconv.Atoi(req.PostFormValue("client"))
	if err != nil {
		return nil, err
	}

	clients, err := r.gz.ApiClientDB.GetClients(r.User.ID())
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, errors.New("no such api client")
}

func account(w http.ResponseWriter, req *http.Request, r *Route, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		switch {

		case req.PostFormValue("submit_bio") != "":
			if err := r.gz.UserDB.SetBio(r.User, strings.TrimSpace(req.PostFormValue("bio"))); err == nil {
				r.Success("your profile has been saved")
				r.SeeOther("/account")
				return nil
			} else {
				r.Danger(err)
			}

		case req.PostFormValue("submit_password") != "":
			var old = req.PostFormValue("old_password")
			var new1 = req.PostFormValue("new_password1")
			var new2 = req.PostFormValue("new_password2")
			if new1 != new2 {
				r.Danger(errors.New("new passwords don't match"))
				break
			}
			if err := r.gz.UserDB.ChangePassword(r.User, old, new1); err == nil {
				r.Success("your password has been changed")
				r.SeeOther("/account")
				return nil
			} else {
				r.Danger(err)
			}

		case req.PostFormValue("submit_client") != "":
			var name = strings.TrimSpace(req.PostFormValue("client_name"))
			if name == "" {
				r.Danger(errors.New("missing client name"))
				break
			}
			if c, err := r.gz.CreateClient(name, r.User); err == nil {
				r.Success("api client %s has been created", c.Name())
				r.SeeOther("/account")
				return nil
			} else {
				r.Danger(err)
			}

		case req.PostFormValue("submit_activate") != "", req.PostFormValue("submit_deactivate") != "":
			c, err := r.ownClient(req)
			if err != nil {
				return err
			}
			if err := r.gz.ApiClientDB.SetClientActive(c, req.PostFormValue("submit_activate") != ""); err == nil {
				r.Success("api client %s has been updated", c.Name())
				r.SeeOther("/account")
				return nil
			} else {
				r.Danger(err)
			}
		}
	}

	return accountTmpl.Execute(w, &accountData{
		Route: r,
	})
}
