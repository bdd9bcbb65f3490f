// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the scheduling logic, so recurrence and balancing rules stay
// independent of the database in use.
package store
