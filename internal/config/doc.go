// Package config loads Gatekeeper configuration from environment variables.
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings
//   - DatabaseConfig: storage driver and SurrealDB connection
//   - JWTConfig: token signing keys, issuer and lifetime
//   - FixtureConfig: guard and default access used by the test-user fixture
//
// # Environment Variables
//
//	SERVER_PORT               - HTTP server port (default: 8080)
//	SERVER_ENV                - development, test or production
//	DB_DRIVER                 - surrealdb or memory (default: surrealdb)
//	DB_HOST, DB_PORT          - SurrealDB address
//	DB_NAMESPACE, DB_DATABASE - SurrealDB namespace and database
//	JWT_PRIVATE_KEY_PATH      - PEM private key used to sign tokens
//	JWT_EXPIRATION_MINS       - Access token lifetime
//	AUTH_GUARD                - Guard name tokens are issued for (default: api)
//	TEST_DEFAULT_ROLES        - Role granted to fixture users by default
//	TEST_DEFAULT_PERMISSIONS  - Permission granted to fixture users by default
//	TEST_BCRYPT_COST          - bcrypt cost for fixture passwords (default: 4)
package config
