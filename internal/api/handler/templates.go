package handler

import (
	"bytes"
	"html/template"

	"github.com/labstack/echo/v4"

	"github.com/homelab/authgate/internal/core/domain"
)

// Server-rendered pages. Presentation carries no auth logic: every decision
// is made by the service and stores before a template runs.

type pageData struct {
	User    *domain.User
	Error   string
	Success string
	Users   []*domain.User
}

func renderPage(c echo.Context, status int, name string, data pageData) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

var pages = template.Must(template.New("pages").Parse(`
{{define "style"}}<style>
body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; max-width: 600px; margin: 50px auto; padding: 20px; }
nav { margin-bottom: 30px; padding-bottom: 10px; border-bottom: 1px solid #eee; }
nav a { margin-right: 15px; }
input[type="text"], input[type="password"] { padding: 10px; margin: 5px 0; width: 100%; box-sizing: border-box; }
button, input[type="submit"] { padding: 10px 20px; background: #007bff; color: white; border: none; cursor: pointer; margin-top: 10px; }
.error { color: red; margin: 10px 0; }
.success { color: green; margin: 10px 0; }
ul { list-style: none; padding: 0; }
li { padding: 10px 0; border-bottom: 1px solid #eee; display: flex; justify-content: space-between; align-items: center; }
</style>{{end}}

{{define "nav"}}<nav><a href="/">Home</a>{{if .User}}<a href="/account">Account</a>{{if .User.IsAdmin}}<a href="/admin/users">Users</a>{{end}}<a href="/logout">Logout ({{.User.Username}})</a>{{else}}<a href="/login">Login</a>{{end}}</nav>{{end}}

{{define "messages"}}{{if .Error}}<p class="error">{{.Error}}</p>{{end}}{{if .Success}}<p class="success">{{.Success}}</p>{{end}}{{end}}

{{define "home"}}<!DOCTYPE html>
<html>
<head><title>authgate</title>{{template "style"}}</head>
<body>
{{template "nav" .}}
<h1>Home</h1>
{{if .User}}<p>Signed in as <strong>{{.User.Username}}</strong>.</p>{{else}}<p><a href="/login">Log in</a> to access private apps.</p>{{end}}
</body>
</html>{{end}}

{{define "login"}}<!DOCTYPE html>
<html>
<head><title>Login - authgate</title>{{template "style"}}</head>
<body>
{{template "nav" .}}
<h1>Login</h1>
{{template "messages" .}}
<form method="POST" action="/login">
    <input type="text" name="username" placeholder="Username" required autofocus>
    <input type="password" name="password" placeholder="Password" required>
    <input type="submit" value="Login">
</form>
</body>
</html>{{end}}

{{define "account"}}<!DOCTYPE html>
<html>
<head><title>Account - authgate</title>{{template "style"}}</head>
<body>
{{template "nav" .}}
<h1>Account Settings</h1>
<p>Logged in as: <strong>{{.User.Username}}</strong></p>
<h2>Change Password</h2>
{{template "messages" .}}
<form method="POST" action="/account">
    <input type="password" name="current_password" placeholder="Current Password" required>
    <input type="password" name="new_password" placeholder="New Password" required>
    <input type="password" name="confirm_password" placeholder="Confirm New Password" required>
    <input type="submit" value="Update Password">
</form>
</body>
</html>{{end}}

{{define "users"}}<!DOCTYPE html>
<html>
<head><title>User Management - authgate</title>{{template "style"}}</head>
<body>
{{template "nav" .}}
<h1>User Management</h1>
{{template "messages" .}}
<h2>Current Users</h2>
<ul>
{{range .Users}}<li><span>{{.Username}} ({{.Role}})</span>
<form method="POST" action="/admin/users/delete" style="display:inline; margin:0;">
    <input type="hidden" name="username" value="{{.Username}}">
    <button type="submit">Delete</button>
</form></li>
{{end}}</ul>
<h2>Add User</h2>
<form method="POST" action="/admin/users/add">
    <input type="text" name="username" placeholder="Username" required>
    <input type="password" name="password" placeholder="Password" required>
    <select name="role">
        <option value="user">User</option>
        <option value="admin">Admin</option>
    </select>
    <input type="submit" value="Add User">
</form>
</body>
</html>{{end}}
`))
