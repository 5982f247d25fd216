package providers

import (
	"fmt"
	"net/http"
	"survey/internal/envelope"
	"survey/internal/structures"

	"github.com/gorilla/mux"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: methodHandler(http.MethodGet, handler),
	})
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: methodHandler(http.MethodPost, handler),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

// Mount registers every route on r. Route urls may carry gorilla/mux
// variables such as {userId}.
func Mount(r *mux.Router, router RouterProviderInterface) {
	for _, route := range router.GetRoutes() {
		r.Handle(route.Url, route.Handler)
	}
	r.NotFoundHandler = NotFoundHandler()
}

func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		envelope.Failure(w, http.StatusNotFound, "not_found", fmt.Sprintf("Endpoint %s %s not found", r.Method, r.URL.Path))
	})
}

func methodHandler(method string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			envelope.Failure(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
			return
		}
		handler.ServeHTTP(w, r)
	})
}
