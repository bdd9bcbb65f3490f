// Package domain contains the core business entities, value objects, and
// domain logic of the application. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The recurrence engine and the weekly load balancer live in the
// subpackages recurrence and balance; both operate on the Task entity
// defined here and never mutate it.
package domain
