// Package events provides types and interfaces for an event-driven architecture.
//
// Services emit domain events (a task was created, completed or deleted, the
// weekly schedule was rebalanced) without knowing which handlers consume them.
//
// The primary components are:
// - Event: a typed, JSON-encoded notification
// - EventHandler: interface for components that react to events
// - EventEmitter: interface for components that publish events
// - AsyncDispatcher: a worker pool that delivers events off the caller's goroutine
package events
