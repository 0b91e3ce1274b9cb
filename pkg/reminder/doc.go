// Package reminder implements the reminder scheduling engine.
//
// A Scheduler owns a configuration snapshot and per-module state. Every tick it
// accumulates elapsed time, updates work-hour income, honors cooldowns, evaluates
// triggers (including randomized surprise windows), picks a weighted message,
// renders it and hands a models.Reminder to the sink. The engine never touches
// disk, network or UI; time and randomness are injected.
package reminder
