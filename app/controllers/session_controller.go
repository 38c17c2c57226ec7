package controllers

import (
	"errors"
	"net/http"

	"quillblog/app/auth"
	"quillblog/app/forms"
	"quillblog/app/middleware"
	"quillblog/app/services"

	"go.uber.org/zap"
)

// SessionController logs editors in and out.
type SessionController struct {
	users    *services.UserService
	sessions *auth.SessionManager
	*Renderer
}

func NewSessionController(users *services.UserService, sessions *auth.SessionManager, renderer *Renderer) *SessionController {
	return &SessionController{users: users, sessions: sessions, Renderer: renderer}
}

// Login shows the login form and starts a session for valid credentials,
// then returns to the local "next" path.
func (sc *SessionController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sc.render(w, r, "login", http.StatusOK, &viewData{
			Title: "Log in",
			Form:  forms.NewLoginForm(r.URL.Query().Get("next")),
		})
		return
	}

	form := forms.BindLoginForm(r)
	if form.Valid() {
		user, err := sc.users.Authenticate(form.Username, form.Password)
		switch {
		case err == nil:
			if err := sc.sessions.Login(w, user); err != nil {
				sc.serverError(w, r, err)
				return
			}
			sc.logger.Info("User logged in",
				zap.String("username", user.Username),
				zap.String("request_id", middleware.GetRequestID(r.Context())),
			)
			http.Redirect(w, r, form.RedirectTarget(), http.StatusSeeOther)
			return
		case errors.Is(err, auth.ErrInvalidCredentials):
			form.Reject()
		default:
			sc.serverError(w, r, err)
			return
		}
	}

	sc.render(w, r, "login", http.StatusOK, &viewData{Title: "Log in", Form: form})
}

// Logout clears the session cookie.
func (sc *SessionController) Logout(w http.ResponseWriter, r *http.Request) {
	sc.sessions.Logout(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
