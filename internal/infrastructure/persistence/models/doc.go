// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain types to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain types carry no GORM tags
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain / *FromDomain functions convert between the two
// 4. Repositories use persistence models for database operations
//
// Structure:
// - renewal.go: daily snapshot header and entries, notification ledger
// - registry.go: read-only customer tax registry
package models
