package controllers

import "net/http"

// PageController serves static pages and the health check.
type PageController struct {
	*Renderer
}

func NewPageController(renderer *Renderer) *PageController {
	return &PageController{Renderer: renderer}
}

func (pc *PageController) About(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "about", http.StatusOK, &viewData{Title: "About"})
}

func (pc *PageController) Health(w http.ResponseWriter, r *http.Request) {
	pc.sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
