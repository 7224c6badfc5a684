// Package internal documents the Gatherhub server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, response rendering, and routing
// - domain: business logic and domain models (users, events, attendance)
// - storage: database access and repositories (pgx + Postgres)
// - config, metrics: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
