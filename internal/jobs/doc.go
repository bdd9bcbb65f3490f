// Package jobs runs the background work of the service on a cron schedule.
// The only job today is the daily rollover that advances stale due dates.
package jobs
