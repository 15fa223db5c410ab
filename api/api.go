package api

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi"
	"github.com/jinzhu/gorm"
	"github.com/pborman/uuid"
	"github.com/rs/cors"
	"github.com/sebest/xff"
	"github.com/sirupsen/logrus"

	"github.com/edvault/edvault/conf"
	gcontext "github.com/edvault/edvault/context"
	"github.com/edvault/edvault/graceful"
	"github.com/edvault/edvault/objectstore"
)

const (
	defaultVersion = "unknown version"
)

var bearerRegexp = regexp.MustCompile(`^(?:B|b)earer (\S+$)`)

// API is the main REST API
type API struct {
	handler    http.Handler
	db         *gorm.DB
	config     *conf.Configuration
	httpClient *http.Client
	version    string
}

// ListenAndServe starts the REST API.
func (a *API) ListenAndServe(hostAndPort string) {
	log := logrus.WithField("component", "api")
	server := &http.Server{
		Addr:    hostAndPort,
		Handler: a.handler,
	}

	closer, _ := graceful.DetectShutdown(log)
	closer.Register("api", server, 10*time.Second)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("http server listen failed")
	}
	closer.Wait()
}

// NewAPI instantiates a new REST API using the default version.
func NewAPI(config *conf.Configuration, db *gorm.DB) *API {
	return NewAPIWithVersion(context.Background(), config, db, defaultVersion)
}

// NewAPIWithVersion instantiates a new REST API.
func NewAPIWithVersion(ctx context.Context, config *conf.Configuration, db *gorm.DB, version string) *API {
	api := &API{
		config:     config,
		db:         db,
		httpClient: &http.Client{},
		version:    version,
	}

	xffmw, _ := xff.Default()

	r := newRouter()
	r.Use(withRequestID)
	r.UseBypass(xffmw.Handler)
	r.UseBypass(newStructuredLogger(logrus.StandardLogger()))
	r.UseBypass(recoverer)
	r.Use(api.populateConfig)
	r.Use(withToken)

	// endpoints
	r.Get("/", api.Index)
	r.Get("/health", api.HealthCheck)

	r.Route("/documents", func(r *router) {
		r.Post("/serve", api.DocumentServe)
	})

	r.Route("/contents", func(r *router) {
		r.Get("/", api.ContentList)
		r.Route("/{content_id}", func(r *router) {
			r.Use(api.withContentID)
			r.Get("/", api.ContentView)
			r.With(adminRequired).Post("/refresh", api.ContentRefresh)
		})
	})

	r.With(authRequired).Get("/purchases", api.PurchaseList)
	r.With(authRequired).Get("/viewer/settings", api.ViewerSettings)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:       []string{"*"},
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:       []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:       []string{"Link", "X-Total-Count"},
		OptionsSuccessStatus: http.StatusOK,
	})

	api.handler = corsHandler.Handler(chi.ServerBaseContext(ctx, r))
	return api
}

func withRequestID(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	id := uuid.NewRandom().String()
	ctx := r.Context()
	ctx = gcontext.WithRequestID(ctx, id)
	return ctx, nil
}

func (a *API) populateConfig(w http.ResponseWriter, r *http.Request) (context.Context, error) {
	ctx := r.Context()
	if gcontext.GetConfig(ctx) == nil {
		ctx = gcontext.WithConfig(ctx, a.config)
	}
	if gcontext.GetObjectStore(ctx) == nil {
		store, err := objectstore.NewStore(a.config)
		if err != nil {
			return nil, internalServerError("Error initializing object store").WithInternalError(err)
		}
		ctx = gcontext.WithObjectStore(ctx, store)
	}
	return ctx, nil
}
