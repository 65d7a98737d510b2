// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS, shutdown timeouts). AppConfig is everything
// specific to folio: the Mongo connection, the admin API key, content
// retention knobs, and file storage.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Admin API key authentication.
	// The static key configured here always works; keys created through
	// /api/keys work alongside it. Leave empty to rely on stored keys only.
	AdminAPIKey string

	// AllowedOrigins restricts API CORS to these origins when set.
	// Empty means any origin (API key auth carries no cookies to protect).
	AllowedOrigins []string

	// Content revision retention: how many revisions to keep per section.
	RevisionKeep int

	// Chat transcript retention: transcripts idle longer than this are purged.
	ChatHistoryTTL time.Duration

	// Request ledger retention.
	LedgerRetention time.Duration

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/uploads")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "uploads/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file
}
