// Package database opens and manages the PostgreSQL connection behind the
// user store. It wraps GORM with connection pooling, retrying startup
// connects, structured query logging, and auto-migration.
//
// Usage:
//
//	db, err := database.Open(ctx, cfg.Database, log)
//	if err != nil { ... }
//	defer db.Close()
//
//	store := user.NewGormStore(db.GormDB)
package database
