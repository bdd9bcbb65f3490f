// Package service provides the application-level task service.
//
// TaskService is the orchestration step between persistence and the two pure
// scheduling components: after any schedule-affecting mutation it runs the
// weekly balancer to assign days, then asks the recurrence engine for the
// resulting due dates, and writes the changes back in a single transaction.
package service
