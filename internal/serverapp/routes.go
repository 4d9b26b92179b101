package serverapp

import (
	"net/http"
	"sort"
)

// RouteDoc describes one API endpoint for GET /api/routes.
type RouteDoc struct {
	Pattern string   `json:"pattern"`
	Methods []string `json:"methods"`
	Summary string   `json:"summary,omitempty"`
}

type routeRegistry struct {
	mux    *http.ServeMux
	routes []RouteDoc
}

func (rr *routeRegistry) handle(pattern string, methods []string, summary string, h http.HandlerFunc) {
	rr.routes = append(rr.routes, RouteDoc{Pattern: pattern, Methods: methods, Summary: summary})
	rr.mux.HandleFunc(pattern, h)
}

func (rr *routeRegistry) list() []RouteDoc {
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	return out
}
