// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	chatapifeature "github.com/foliostack/folio/internal/app/features/chatapi"
	eventsapifeature "github.com/foliostack/folio/internal/app/features/eventsapi"
	healthfeature "github.com/foliostack/folio/internal/app/features/health"
	keysapifeature "github.com/foliostack/folio/internal/app/features/keysapi"
	ledgerapifeature "github.com/foliostack/folio/internal/app/features/ledgerapi"
	sectionapifeature "github.com/foliostack/folio/internal/app/features/sectionapi"
	settingsapifeature "github.com/foliostack/folio/internal/app/features/settingsapi"
	testimonialapifeature "github.com/foliostack/folio/internal/app/features/testimonialapi"
	uploadapifeature "github.com/foliostack/folio/internal/app/features/uploadapi"
	apikeystore "github.com/foliostack/folio/internal/app/store/apikey"
	ledgerstore "github.com/foliostack/folio/internal/app/store/ledger"
	revisionstore "github.com/foliostack/folio/internal/app/store/revision"
	"github.com/foliostack/folio/internal/app/system/apicors"
	"github.com/foliostack/folio/internal/app/system/auth"
	"github.com/foliostack/folio/internal/app/system/events"
	"github.com/foliostack/folio/internal/app/system/ledger"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// The API splits into two groups under /api:
//   - Public routes: section reads, settings read, testimonial submission,
//     chatbot, and the SSE change stream. No authentication.
//   - Admin routes: content writes, moderation, uploads, the request
//     ledger, and key management. Bearer API key auth.
//
// Both groups share permissive API CORS (the dashboard and public site are
// served from other origins) and the error ledger middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Shared event hub: every content mutation publishes here, and the SSE
	// stream at /api/events fans the events out to connected dashboards.
	hub := events.NewHub()

	keyStore := apikeystore.New(deps.MongoDatabase)
	revStore := revisionstore.New(deps.MongoDatabase)

	sectionHandler := sectionapifeature.NewHandler(deps.MongoDatabase, logger, hub, revStore, appCfg.RevisionKeep)
	settingsHandler := settingsapifeature.NewHandler(deps.MongoDatabase, logger, hub)
	testimonialHandler := testimonialapifeature.NewHandler(deps.MongoDatabase, logger, hub)
	chatHandler := chatapifeature.NewHandler(deps.MongoDatabase, logger)
	uploadHandler := uploadapifeature.NewHandler(deps.FileStorage, logger)
	eventsHandler := eventsapifeature.NewHandler(hub, logger)
	ledgerHandler := ledgerapifeature.NewHandler(deps.MongoDatabase, logger)
	keysHandler := keysapifeature.NewHandler(deps.MongoDatabase, logger)

	ledgerConfig := ledger.DefaultConfig(ledgerstore.New(deps.MongoDatabase), logger)

	apiCORS := apicors.Middleware()
	if len(appCfg.AllowedOrigins) > 0 {
		apiCORS = apicors.MiddlewareWithOrigins(appCfg.AllowedOrigins...)
	}

	r := chi.NewRouter()

	// Global middleware. The SSE stream gets its own timeout-free group
	// below; everything else must complete within 30 seconds.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	r.Route("/api", func(api chi.Router) {
		api.Use(apiCORS)
		api.Use(ledger.Middleware(ledgerConfig))

		// SSE change stream. Mounted before the timeout middleware applies;
		// a long-lived stream must not be cut off at 30 seconds.
		api.Mount("/events", eventsapifeature.Routes(eventsHandler))

		api.Group(func(pub chi.Router) {
			pub.Use(chimw.Timeout(30 * time.Second))

			settingsapifeature.MountPublic(pub, settingsHandler)
			testimonialapifeature.MountPublic(pub, testimonialHandler)
			pub.Mount("/chatbot", chatapifeature.Routes(chatHandler))

			// Last: GET /{section} is a catch-all for unknown first segments.
			sectionapifeature.MountPublic(pub, sectionHandler)
		})

		api.Group(func(admin chi.Router) {
			admin.Use(chimw.Timeout(30 * time.Second))
			admin.Use(auth.APIKeyAuth(appCfg.AdminAPIKey, keyStore, logger))

			settingsapifeature.MountAdmin(admin, settingsHandler)
			testimonialapifeature.MountAdmin(admin, testimonialHandler)
			admin.Mount("/upload", uploadapifeature.Routes(uploadHandler))
			admin.Mount("/ledger", ledgerapifeature.Routes(ledgerHandler))
			admin.Mount("/keys", keysapifeature.Routes(keysHandler))

			sectionapifeature.MountAdmin(admin, sectionHandler)
		})
	})

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Uploaded files (local storage only). S3 uploads are served from
	// CloudFront, so no route is needed here.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	return r, nil
}
