package domain

import "time"

// SchedulerType selects how the flush cadence is configured.
type SchedulerType string

const (
	SchedulerHour SchedulerType = "hour"
	SchedulerCron SchedulerType = "cron"
)

// TriggerKind identifies the cadence described by a Trigger.
type TriggerKind string

const (
	TriggerDisabled TriggerKind = "disabled"
	TriggerHourly   TriggerKind = "hourly"
	TriggerDaily    TriggerKind = "daily"
	TriggerCron     TriggerKind = "cron"
)

// Schedule computes activation times. It matches cron.Schedule.
type Schedule interface {
	Next(time.Time) time.Time
}

// Trigger describes when a recurring task fires.
// Minute is set for hourly triggers, Hour for daily ones.
type Trigger struct {
	Name       string
	Kind       TriggerKind
	Minute     int
	Hour       int
	Expression string
	Schedule   Schedule
}

// DisabledTrigger returns a trigger that never fires.
func DisabledTrigger(name string) Trigger {
	return Trigger{Name: name, Kind: TriggerDisabled}
}

// Enabled reports whether the trigger schedules any run.
func (t Trigger) Enabled() bool {
	return t.Kind != TriggerDisabled && t.Schedule != nil
}

// Next returns the first activation strictly after the given time,
// or the zero time for a disabled trigger.
func (t Trigger) Next(after time.Time) time.Time {
	if !t.Enabled() {
		return time.Time{}
	}
	return t.Schedule.Next(after)
}
