// Package postgres implements the persistence interfaces from internal/store
// on PostgreSQL: a relational users table and a JSONB slot table holding each
// user's serialized lesson collection.
package postgres
