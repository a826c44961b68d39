package handlers

import (
	"net/http"
)

// NotFoundPage is the template rendered for unknown paths and written as 404.html.
const NotFoundPage = "404.plush.html"

func (r *Router) Custom404Handler(w http.ResponseWriter, req *http.Request) {
	ctx := newContext(r.site, req.URL.Path)
	renderPage(w, r.site, http.StatusNotFound, NotFoundPage, ctx)
}
