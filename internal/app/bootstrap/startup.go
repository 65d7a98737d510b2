// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	apikeystore "github.com/foliostack/folio/internal/app/store/apikey"
	chatstore "github.com/foliostack/folio/internal/app/store/chat"
	ledgerstore "github.com/foliostack/folio/internal/app/store/ledger"
	revisionstore "github.com/foliostack/folio/internal/app/store/revision"
	"github.com/foliostack/folio/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are
// complete, but before the HTTP handler is built and requests are served.
//
// Returning a non-nil error aborts startup and prevents the server from
// starting.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminAPIKey == "" {
		// Without a static key, a stored key is the only way in.
		keyStore := apikeystore.New(deps.MongoDatabase)
		active, err := keyStore.CountActive(ctx)
		if err != nil {
			logger.Warn("failed to count active API keys", zap.Error(err))
		} else if active == 0 {
			logger.Warn("no static admin API key and no stored active keys; admin endpoints are unreachable until one is configured")
		}
	}

	// Start background task runner
	startTaskRunner(deps.MongoDatabase, appCfg, logger)

	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(db *mongo.Database, appCfg AppConfig, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	// Register retention jobs
	taskRunner.Register(tasks.RevisionTrimJob(revisionstore.New(db), appCfg.RevisionKeep, logger))
	taskRunner.Register(tasks.ChatCleanupJob(chatstore.New(db), appCfg.ChatHistoryTTL, logger))
	taskRunner.Register(tasks.LedgerPurgeJob(ledgerstore.New(db), appCfg.LedgerRetention, logger))

	// Start running jobs
	taskRunner.Start()
}
