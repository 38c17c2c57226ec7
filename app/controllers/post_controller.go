package controllers

import (
	"errors"
	"net/http"

	"quillblog/app/forms"
	"quillblog/app/metrics"
	"quillblog/app/middleware"
	"quillblog/app/models"
	"quillblog/app/services"

	"go.uber.org/zap"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	posts   *services.PostService
	users   *services.UserService
	metrics *metrics.Metrics
	*Renderer
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, users *services.UserService, m *metrics.Metrics, renderer *Renderer) *PostController {
	return &PostController{
		posts:    posts,
		users:    users,
		metrics:  m,
		Renderer: renderer,
	}
}

// List shows published posts, newest first.
func (pc *PostController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.posts.ListPublished()
	if err != nil {
		pc.serverError(w, r, err)
		return
	}
	pc.render(w, r, "post_list", http.StatusOK, &viewData{Posts: posts})
}

// Detail shows a post. Anonymous visitors only see approved comments.
func (pc *PostController) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := pk(r)
	if err != nil {
		pc.NotFound(w, r)
		return
	}

	post, err := visiblePost(pc.posts, r, id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	comments := post.ApprovedComments()
	if middleware.CurrentUser(r.Context()) != nil {
		comments = post.Comments
	}
	pc.render(w, r, "post_detail", http.StatusOK, &viewData{Title: post.Title, Post: post, Comments: comments})
}

// visiblePost loads a post for the current visitor. Anonymous visitors only
// reach published posts; drafts and future-dated posts are not found.
func visiblePost(posts *services.PostService, r *http.Request, id int) (*models.Post, error) {
	if middleware.CurrentUser(r.Context()) == nil {
		return posts.GetPublishedPost(id)
	}
	return posts.GetPost(id)
}

// Drafts lists unpublished posts, oldest first.
func (pc *PostController) Drafts(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.posts.ListDrafts()
	if err != nil {
		pc.serverError(w, r, err)
		return
	}
	pc.render(w, r, "post_draft_list", http.StatusOK, &viewData{Title: "Drafts", Posts: posts})
}

// New shows and handles the create form.
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		form := forms.NewPostForm(nil)
		if user := middleware.CurrentUser(r.Context()); user != nil {
			form.Author = user.ID
		}
		pc.renderForm(w, r, "New Post", form)
		return
	}

	form := forms.BindPostForm(r)
	post := &models.Post{}
	if !pc.save(w, r, form, post, pc.posts.CreatePost) {
		return
	}

	pc.logger.Info("Post created", zap.Int("post_id", post.ID), zap.String("request_id", middleware.GetRequestID(r.Context())))
	http.Redirect(w, r, post.URL(), http.StatusSeeOther)
}

// Edit shows and handles the update form.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := pk(r)
	if err != nil {
		pc.NotFound(w, r)
		return
	}

	post, err := pc.posts.GetPost(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		pc.renderForm(w, r, "Edit Post", forms.NewPostForm(post))
		return
	}

	form := forms.BindPostForm(r)
	if !pc.save(w, r, form, post, pc.posts.UpdatePost) {
		return
	}
	http.Redirect(w, r, post.URL(), http.StatusSeeOther)
}

// save applies a valid form to post and persists it. On failure it has
// already answered the request and returns false.
func (pc *PostController) save(w http.ResponseWriter, r *http.Request, form *forms.PostForm, post *models.Post, persist func(*models.Post) error) bool {
	if form.Valid() {
		form.Apply(post)
		err := persist(post)
		if err == nil {
			return true
		}

		var verr *services.ValidationError
		if !errors.As(err, &verr) {
			pc.fail(w, r, err)
			return false
		}
		form.Errors.Merge(verr.Fields)
	}

	title := "New Post"
	if post.ID != 0 {
		title = "Edit Post"
	}
	pc.renderForm(w, r, title, form)
	return false
}

func (pc *PostController) renderForm(w http.ResponseWriter, r *http.Request, title string, form *forms.PostForm) {
	authors, err := pc.users.ListUsers()
	if err != nil {
		pc.serverError(w, r, err)
		return
	}
	pc.render(w, r, "post_form", http.StatusOK, &viewData{Title: title, Form: form, Authors: authors})
}

// Remove asks for confirmation on GET and deletes the post and its comments on POST.
func (pc *PostController) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pk(r)
	if err != nil {
		pc.NotFound(w, r)
		return
	}

	post, err := pc.posts.GetPost(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		pc.render(w, r, "post_confirm_delete", http.StatusOK, &viewData{Title: "Delete " + post.Title, Post: post})
		return
	}

	if err := pc.posts.DeletePost(id); err != nil {
		pc.fail(w, r, err)
		return
	}

	pc.logger.Info("Post deleted", zap.Int("post_id", id), zap.String("request_id", middleware.GetRequestID(r.Context())))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Publish stamps the post with the current time and returns to its page.
func (pc *PostController) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := pk(r)
	if err != nil {
		pc.NotFound(w, r)
		return
	}

	post, err := pc.posts.Publish(id)
	if err != nil {
		pc.fail(w, r, err)
		return
	}

	pc.metrics.RecordPublish()
	pc.logger.Info("Post published", zap.Int("post_id", id), zap.String("request_id", middleware.GetRequestID(r.Context())))
	http.Redirect(w, r, post.URL(), http.StatusSeeOther)
}
