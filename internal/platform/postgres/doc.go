// Package postgres provides the PostgreSQL implementation of store.TaskStore,
// the embedded goose migrations for its schema, and mapping from driver errors
// to store errors.
package postgres
