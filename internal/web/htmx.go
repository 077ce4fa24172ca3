package web

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// RequestHeaderKey is the header htmx sets on requests it initiates
const RequestHeaderKey = "HX-Request"

// IsHTMXRequest reports whether the request was initiated by htmx
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// Retarget tells htmx to swap the element matching selector, taken from the
// response, in place of the element that issued the request.
func Retarget(w http.ResponseWriter, selector string) {
	w.Header().Set("HX-Retarget", selector)
	w.Header().Set("HX-Reselect", selector)
	w.Header().Set("HX-Reswap", "outerHTML")
}

// RenderPage writes fragment for htmx requests and full otherwise. A nil
// fragment means full is used for both.
func RenderPage(w http.ResponseWriter, r *http.Request, status int, fragment, full templ.Component) {
	target := full
	if fragment != nil {
		w.Header().Add("Vary", RequestHeaderKey)
		if IsHTMXRequest(r) {
			target = fragment
		}
	}
	if target == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if status == 0 {
		status = http.StatusOK
	}
	templ.Handler(target, templ.WithStatus(status)).ServeHTTP(w, r)
}
