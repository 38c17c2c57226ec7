package controllers

import (
	"errors"
	"net/http"

	"quillblog/app/models"
	"quillblog/app/repositories"
	"quillblog/app/services"
)

// APIController exposes published posts as JSON.
type APIController struct {
	posts *services.PostService
	*Renderer
}

func NewAPIController(posts *services.PostService, renderer *Renderer) *APIController {
	return &APIController{posts: posts, Renderer: renderer}
}

type apiPost struct {
	*models.Post
	URL      string            `json:"url"`
	Comments []*models.Comment `json:"comments,omitempty"`
}

// List returns published posts in the same order as the home page.
func (ac *APIController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := ac.posts.ListPublished()
	if err != nil {
		ac.sendServerError(w, r, err)
		return
	}

	out := make([]apiPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, apiPost{Post: p, URL: p.URL()})
	}
	ac.sendJSON(w, http.StatusOK, map[string]interface{}{"posts": out})
}

// Show returns one published post with its approved comments.
func (ac *APIController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pk(r)
	if err != nil {
		ac.sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := ac.posts.GetPublishedPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		ac.sendError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.sendServerError(w, r, err)
		return
	}

	ac.sendJSON(w, http.StatusOK, apiPost{Post: post, URL: post.URL(), Comments: post.ApprovedComments()})
}
