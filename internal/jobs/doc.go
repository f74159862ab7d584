// Package jobs runs periodic background work on a cron schedule.
package jobs
