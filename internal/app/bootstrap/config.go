// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "FOLIO"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, admin_api_key, etc.
//   - Environment variables: FOLIO_MONGO_URI, FOLIO_ADMIN_API_KEY, etc.
//   - Command-line flags: --mongo_uri, --admin_api_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "folio", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Admin API key (for the dashboard frontend using Bearer token auth)
	{Name: "admin_api_key", Default: "", Desc: "Static admin API key (leave empty to rely on stored keys only)"},

	// CORS configuration for the API
	{Name: "allowed_origins", Default: "", Desc: "Comma-separated list of allowed CORS origins (empty allows any)"},

	// Content retention configuration
	{Name: "revision_keep", Default: 5, Desc: "Number of content revisions to keep per section"},
	{Name: "chat_history_ttl", Default: "720h", Desc: "Idle chat transcripts older than this are purged (e.g., 720h = 30 days)"},
	{Name: "ledger_retention", Default: "168h", Desc: "Request ledger entries older than this are purged (e.g., 168h = 7 days)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local files"},

	// S3/CloudFront configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "uploads/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app. WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, FOLIO_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AdminAPIKey:    appValues.String("admin_api_key"),
		AllowedOrigins: splitOrigins(appValues.String("allowed_origins")),

		// Content retention
		RevisionKeep:    appValues.Int("revision_keep"),
		ChatHistoryTTL:  appValues.Duration("chat_history_ttl", 720*time.Hour),
		LedgerRetention: appValues.Duration("ledger_retention", 168*time.Hour),

		// File storage
		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		// S3/CloudFront
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),
	}

	return coreCfg, appCfg, nil
}

// splitOrigins parses a comma-separated origin list, dropping blanks.
func splitOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.RevisionKeep < 1 {
		return fmt.Errorf("revision_keep must be at least 1, got %d", appCfg.RevisionKeep)
	}

	switch appCfg.StorageType {
	case "local", "", "s3":
	default:
		return fmt.Errorf("unknown storage type: %s", appCfg.StorageType)
	}

	if appCfg.AdminAPIKey == "" && coreCfg.Env == "prod" {
		logger.Warn("no static admin API key configured; admin access requires a stored key")
	}

	return nil
}
