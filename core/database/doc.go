// Package database handles database connections and referential checks.
//
// It provides a wrapper around GORM to configure PostgreSQL (the seed target) or
// MySQL connections based on the application's configuration.
//
// # Connect
//
// Connect opens the connection selected by Config.Driver and verifies it with a
// ping bounded by TimeoutSeconds. Dialector builds the driver without connecting.
//
// # Key Checks
//
// FindDuplicateKeys and FindOrphans run the same uniqueness and referential
// integrity checks as the document verifier, but against a seeded database.
// Table and column names are validated as plain identifiers and quoted with the
// dialect's rules before they are placed in the query.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	orphans, err := database.FindOrphans(ctx, db, "content_analytics", "content_id", "contents", "id")
package database
