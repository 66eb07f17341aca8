package routes

import "net/http"

// Group collects routes under a shared prefix. Child groups nest their
// prefixes beneath the parent's.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route from the given groups to the mux using
// "METHOD prefix+pattern" patterns.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		group.register(mux, "")
	}
}

func (g Group) register(mux *http.ServeMux, parent string) {
	prefix := parent + g.Prefix
	for _, route := range g.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		child.register(mux, prefix)
	}
}
