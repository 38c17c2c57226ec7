package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"quillblog/app/auth"
	"quillblog/app/config"
	"quillblog/app/controllers"
	"quillblog/app/metrics"
	"quillblog/app/middleware"
	"quillblog/app/repositories"
	"quillblog/app/services"
	"quillblog/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Options carries the dependencies of the web application.
type Options struct {
	Store          *repositories.Store
	Config         *config.Config
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	// Clock overrides time.Now in the services.
	Clock func() time.Time
}

// App is the wired application. Handler is the router wrapped in the
// request-scoped middleware and is what the server should serve.
type App struct {
	Router   *mux.Router
	Handler  http.Handler
	Posts    *services.PostService
	Comments *services.CommentService
	Users    *services.UserService
	Sessions *auth.SessionManager
}

// SetupMVCRoutes builds services, controllers and named routes over opts.Store.
func SetupMVCRoutes(opts Options) (*App, error) {
	if opts.Store == nil || opts.Config == nil {
		return nil, errors.New("store and config are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config

	app := &App{
		Router:   mux.NewRouter().StrictSlash(true),
		Posts:    services.NewPostService(opts.Store.Posts, opts.Store.Comments, opts.Store.Users),
		Comments: services.NewCommentService(opts.Store.Comments, opts.Store.Posts),
		Users:    services.NewUserService(opts.Store.Users),
		Sessions: auth.NewSessionManager([]byte(cfg.SessionSecret), cfg.SessionTTL, cfg.IsProd()),
	}
	if opts.Clock != nil {
		app.Posts.SetClock(opts.Clock)
		app.Comments.SetClock(opts.Clock)
		app.Sessions.SetClock(opts.Clock)
	}

	funcs := views.Funcs(cfg.Location())
	funcs["url"] = URLFor(app.Router)
	templates, err := views.Load(funcs)
	if err != nil {
		return nil, err
	}
	renderer := controllers.NewRenderer(templates, logger)

	postController := controllers.NewPostController(app.Posts, app.Users, opts.Metrics, renderer)
	commentController := controllers.NewCommentController(app.Comments, app.Posts, opts.Metrics, renderer)
	pageController := controllers.NewPageController(renderer)
	sessionController := controllers.NewSessionController(app.Users, app.Sessions, renderer)
	apiController := controllers.NewAPIController(app.Posts, renderer)

	router := app.Router
	if opts.Metrics != nil {
		router.Use(middleware.Metrics(opts.Metrics))
	}
	router.NotFoundHandler = notFound(renderer)

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.LoginRequired(cfg.LoginURL)(h)
	}

	// Static files and operational endpoints
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static", views.Static()))
	router.HandleFunc("/healthz", pageController.Health).Methods("GET").Name("healthz")
	if opts.MetricsHandler != nil {
		router.Handle("/metrics", opts.MetricsHandler).Methods("GET").Name("metrics")
	}

	// Read paths
	router.HandleFunc("/", postController.List).Methods("GET").Name("post_list")
	router.HandleFunc("/about/", pageController.About).Methods("GET").Name("about")
	router.HandleFunc("/post/{pk:[0-9]+}/", postController.Detail).Methods("GET").Name("post_detail")

	// Write paths
	router.Handle("/post/new/", protected(postController.New)).Methods("GET", "POST").Name("post_new")
	router.Handle("/post/{pk:[0-9]+}/edit/", protected(postController.Edit)).Methods("GET", "POST").Name("post_edit")
	router.Handle("/post/{pk:[0-9]+}/remove/", protected(postController.Remove)).Methods("GET", "POST").Name("post_remove")
	router.Handle("/drafts/", protected(postController.Drafts)).Methods("GET").Name("post_draft_list")
	router.Handle("/post/{pk:[0-9]+}/publish/", protected(postController.Publish)).Methods("POST").Name("post_publish")
	router.Handle("/comment/{pk:[0-9]+}/approve/", protected(commentController.Approve)).Methods("POST").Name("comment_approve")
	router.Handle("/comment/{pk:[0-9]+}/remove/", protected(commentController.Remove)).Methods("POST").Name("comment_remove")

	// Comment submission is open to visitors and throttled
	limited := middleware.RateLimit(cfg.CommentRateRPM)(http.HandlerFunc(commentController.Add))
	router.Handle("/post/{pk:[0-9]+}/comment/", limited).Methods("POST")
	router.HandleFunc("/post/{pk:[0-9]+}/comment/", commentController.Add).Methods("GET").Name("add_comment_to_post")

	// Session
	router.HandleFunc("/login/", sessionController.Login).Methods("GET", "POST").Name("login")
	router.HandleFunc("/logout/", sessionController.Logout).Methods("GET", "POST").Name("logout")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.HandleFunc("/posts", apiController.List).Methods("GET").Name("api_post_list")
	api.HandleFunc("/posts/{pk:[0-9]+}", apiController.Show).Methods("GET").Name("api_post_detail")

	var handler http.Handler = router
	handler = middleware.Authenticate(app.Sessions, app.Users.GetUser, logger)(handler)
	handler = middleware.Recoverer(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)
	app.Handler = handler

	return app, nil
}

// URLFor reverses a named route. Pairs alternate variable names and values;
// values are formatted with fmt.Sprint.
func URLFor(router *mux.Router) func(name string, pairs ...interface{}) (string, error) {
	return func(name string, pairs ...interface{}) (string, error) {
		route := router.Get(name)
		if route == nil {
			return "", fmt.Errorf("no route named %q", name)
		}

		vars := make([]string, len(pairs))
		for i, p := range pairs {
			vars[i] = fmt.Sprint(p)
		}
		u, err := route.URL(vars...)
		if err != nil {
			return "", fmt.Errorf("failed to build url for %q: %w", name, err)
		}
		return u.String(), nil
	}
}

func notFound(renderer *controllers.Renderer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		renderer.NotFound(w, r)
	})
}
