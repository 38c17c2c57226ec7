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

// CommentController handles HTTP requests for comments
type CommentController struct {
	comments *services.CommentService
	posts    *services.PostService
	metrics  *metrics.Metrics
	*Renderer
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService, posts *services.PostService, m *metrics.Metrics, renderer *Renderer) *CommentController {
	return &CommentController{
		comments: comments,
		posts:    posts,
		metrics:  m,
		Renderer: renderer,
	}
}

// Add shows the comment form and stores valid submissions as unapproved comments.
func (cc *CommentController) Add(w http.ResponseWriter, r *http.Request) {
	id, err := pk(r)
	if err != nil {
		cc.NotFound(w, r)
		return
	}

	post, err := visiblePost(cc.posts, r, id)
	if err != nil {
		cc.fail(w, r, err)
		return
	}

	if r.Method != http.MethodPost {
		cc.renderForm(w, r, forms.NewCommentForm(), post)
		return
	}

	form := forms.BindCommentForm(r)
	if form.Valid() {
		err := cc.comments.AddComment(post.ID, form.Comment())
		if err == nil {
			cc.metrics.RecordComment("submitted")
			http.Redirect(w, r, post.URL(), http.StatusSeeOther)
			return
		}

		var verr *services.ValidationError
		if !errors.As(err, &verr) {
			cc.fail(w, r, err)
			return
		}
		form.Errors.Merge(verr.Fields)
	}

	cc.metrics.RecordComment("rejected")
	cc.renderForm(w, r, form, post)
}

func (cc *CommentController) renderForm(w http.ResponseWriter, r *http.Request, form *forms.CommentForm, post *models.Post) {
	cc.render(w, r, "comment_form", http.StatusOK, &viewData{Title: "Comment on " + post.Title, Post: post, Form: form})
}

// Approve publishes a pending comment on its post's page.
func (cc *CommentController) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pk(r)
	if err != nil {
		cc.NotFound(w, r)
		return
	}

	comment, err := cc.comments.Approve(id)
	if err != nil {
		cc.fail(w, r, err)
		return
	}

	cc.metrics.RecordComment("approved")
	cc.logger.Info("Comment approved",
		zap.Int("comment_id", id),
		zap.Int("post_id", comment.PostID),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
	)
	http.Redirect(w, r, comment.URL(), http.StatusSeeOther)
}

// Remove deletes a comment and returns to its post's page.
func (cc *CommentController) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pk(r)
	if err != nil {
		cc.NotFound(w, r)
		return
	}

	comment, err := cc.comments.Remove(id)
	if err != nil {
		cc.fail(w, r, err)
		return
	}

	cc.metrics.RecordComment("removed")
	cc.logger.Info("Comment removed",
		zap.Int("comment_id", id),
		zap.Int("post_id", comment.PostID),
		zap.String("request_id", middleware.GetRequestID(r.Context())),
	)
	http.Redirect(w, r, comment.URL(), http.StatusSeeOther)
}
