package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
)

// apiHandler is the signature of our route handlers: any returned error is
// rendered as a typed JSON error response.
type apiHandler func(w http.ResponseWriter, r *http.Request) error

// apiMiddleware can swap the request context or abort with an error.
type apiMiddleware func(w http.ResponseWriter, r *http.Request) (context.Context, error)

type router struct {
	chi chi.Router
}

func newRouter() *router {
	return &router{chi: chi.NewRouter()}
}

func (r *router) Route(pattern string, fn func(*router)) {
	r.chi.Route(pattern, func(c chi.Router) {
		fn(&router{chi: c})
	})
}

func (r *router) Get(pattern string, fn apiHandler)     { r.chi.Get(pattern, handler(fn)) }
func (r *router) Post(pattern string, fn apiHandler)    { r.chi.Post(pattern, handler(fn)) }
func (r *router) Put(pattern string, fn apiHandler)     { r.chi.Put(pattern, handler(fn)) }
func (r *router) Delete(pattern string, fn apiHandler)  { r.chi.Delete(pattern, handler(fn)) }
func (r *router) Options(pattern string, fn apiHandler) { r.chi.Options(pattern, handler(fn)) }

func (r *router) With(fn apiMiddleware) *router {
	c := r.chi.With(middleware(fn))
	return &router{chi: c}
}

func (r *router) Use(fn apiMiddleware) {
	r.chi.Use(middleware(fn))
}

// UseBypass registers a stock net/http middleware.
func (r *router) UseBypass(fn func(http.Handler) http.Handler) {
	r.chi.Use(fn)
}

func (r *router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.chi.ServeHTTP(w, req)
}

func handler(fn apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			handleError(err, w, r)
		}
	}
}

func middleware(fn apiMiddleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := fn(w, r)
			if err != nil {
				handleError(err, w, r)
				return
			}
			if ctx != nil {
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
