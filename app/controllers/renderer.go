package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"quillblog/app/middleware"
	"quillblog/app/models"
	"quillblog/app/repositories"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// viewData is what every page template receives.
type viewData struct {
	Title    string
	User     *models.User
	Post     *models.Post
	Posts    []*models.Post
	Comments []*models.Comment
	Authors  []*models.User
	Form     interface{}
}

// Renderer executes page templates and writes consistent error responses.
type Renderer struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

// NewRenderer wraps templates keyed by page name, as returned by views.Load.
func NewRenderer(templates map[string]*template.Template, logger *zap.Logger) *Renderer {
	return &Renderer{templates: templates, logger: logger}
}

// render executes page into a buffer so a template failure still yields a clean 500.
func (rr *Renderer) render(w http.ResponseWriter, r *http.Request, page string, status int, data *viewData) {
	tmpl, ok := rr.templates[page]
	if !ok {
		rr.serverError(w, r, errors.New("unknown template "+page))
		return
	}

	data.User = middleware.CurrentUser(r.Context())

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		rr.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// NotFound renders the 404 page. It also serves as the router's NotFoundHandler.
func (rr *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	tmpl, ok := rr.templates["404"]
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	data := &viewData{Title: "Not Found", User: middleware.CurrentUser(r.Context())}
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		rr.logger.Error("Failed to render not found page", zap.Error(err))
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = buf.WriteTo(w)
}

func (rr *Renderer) serverError(w http.ResponseWriter, r *http.Request, err error) {
	rr.logger.Error("Request failed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// fail maps storage errors onto 404 or 500.
func (rr *Renderer) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		rr.NotFound(w, r)
		return
	}
	rr.serverError(w, r, err)
}

func (rr *Renderer) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rr.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (rr *Renderer) sendError(w http.ResponseWriter, message string, status int) {
	rr.sendJSON(w, status, map[string]string{"error": message})
}

// sendServerError logs err and answers with a generic JSON 500.
func (rr *Renderer) sendServerError(w http.ResponseWriter, r *http.Request, err error) {
	rr.logger.Error("Request failed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	rr.sendError(w, "Internal server error", http.StatusInternalServerError)
}

// pk reads the numeric {pk} route variable.
func pk(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["pk"])
}
