package forms

import (
	"net/http"
	"net/url"
	"strings"
)

const invalidLogin = "Please enter a correct username and password. Note that both fields may be case-sensitive."

// LoginForm carries credentials and the page to return to.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next" validate:"-"`

	Errors Errors `form:"-" validate:"-"`
}

var loginWidgets = map[string]Widget{
	"username": {Type: "text", Class: "textinputclass"},
	"password": {Type: "password", Class: "textinputclass"},
}

// NewLoginForm returns an empty form that will return to next after login.
func NewLoginForm(next string) *LoginForm {
	return &LoginForm{Next: next, Errors: Errors{}}
}

// BindLoginForm reads and validates submitted credentials.
func BindLoginForm(r *http.Request) *LoginForm {
	parse(r)
	f := &LoginForm{
		Username: value(r, "username"),
		Password: r.PostFormValue("password"),
		Next:     value(r, "next"),
		Errors:   Errors{},
	}
	check(f, f.Errors)
	return f
}

func (f *LoginForm) Valid() bool {
	return !f.Errors.Any()
}

// Reject records a credential failure without saying which part was wrong.
func (f *LoginForm) Reject() {
	f.Password = ""
	f.Errors.Add(NonFieldErrors, invalidLogin)
}

// RedirectTarget is Next when it is a local path, else "/".
func (f *LoginForm) RedirectTarget() string {
	return SafeRedirect(f.Next)
}

// SafeRedirect accepts only absolute paths on this host. Browsers drop tabs
// and newlines from URLs, so any control character is refused.
func SafeRedirect(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if strings.IndexFunc(next, func(r rune) bool { return r < 0x20 || r == 0x7f }) >= 0 {
		return "/"
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

func (f *LoginForm) Widgets() map[string]Widget {
	return loginWidgets
}
