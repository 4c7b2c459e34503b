// Package schedule turns flush cadence configuration into triggers.
package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/bnema/keyflush/internal/domain"
)

// parser accepts 5 fields, or 6 with leading seconds, plus @descriptors.
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Spec is the cadence configuration of a recurring task.
type Spec struct {
	Name           string
	Type           domain.SchedulerType
	Interval       string
	CronExpression string
}

// Build converts the cadence configuration into a trigger.
//
// In hour mode the interval has the form "hour=<minute>" or "daily=<hour>".
// An empty interval or cron expression yields a disabled trigger.
// Build is pure apart from logging and safe for concurrent use.
func Build(spec Spec, log zerolog.Logger) (domain.Trigger, error) {
	log = log.With().Str("task", spec.Name).Logger()

	switch spec.Type {
	case domain.SchedulerHour:
		if spec.Interval == "" {
			log.Info().Msg("skipping task as interval is not set")
			return domain.DisabledTrigger(spec.Name), nil
		}
		return parseInterval(spec.Name, spec.Interval)
	case domain.SchedulerCron:
		if spec.CronExpression == "" {
			log.Info().Msg("skipping task as cron is not set")
			return domain.DisabledTrigger(spec.Name), nil
		}
		trigger, err := parseCron(spec.Name, spec.CronExpression)
		if err != nil {
			return domain.Trigger{}, err
		}
		log.Info().Str("cron", trigger.Expression).Msg("starting task with cron expression")
		return trigger, nil
	default:
		// Unknown types disable the task rather than failing startup.
		log.Warn().Str("scheduler_type", string(spec.Type)).Msg("unknown scheduler type, task disabled")
		return domain.DisabledTrigger(spec.Name), nil
	}
}

func parseInterval(name, interval string) (domain.Trigger, error) {
	parts := strings.Split(interval, "=")
	if len(parts) != 2 {
		return domain.Trigger{}, fmt.Errorf("%w: interval format is invalid, expecting name=value, received: %s",
			domain.ErrInvalidArgument, interval)
	}

	unit := strings.ToUpper(parts[0])
	if unit != "HOUR" && unit != "DAILY" {
		return domain.Trigger{}, fmt.Errorf("%w: interval type is invalid, expecting \"hour, daily\", received: %s",
			domain.ErrUnsupportedKind, unit)
	}

	value, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.Trigger{}, fmt.Errorf("%w: interval value is not an integer, received: %s",
			domain.ErrInvalidArgument, parts[1])
	}

	if unit == "HOUR" {
		if value < 0 || value > 59 {
			return domain.Trigger{}, fmt.Errorf("%w: minute of hour must be between 0 and 59, received: %d",
				domain.ErrInvalidArgument, value)
		}
		return fixedTrigger(name, domain.TriggerHourly, fmt.Sprintf("0 %d * * * *", value), value, 0)
	}

	if value < 0 || value > 23 {
		return domain.Trigger{}, fmt.Errorf("%w: hour of day must be between 0 and 23, received: %d",
			domain.ErrInvalidArgument, value)
	}
	return fixedTrigger(name, domain.TriggerDaily, fmt.Sprintf("0 0 %d * * *", value), 0, value)
}

func fixedTrigger(name string, kind domain.TriggerKind, expr string, minute, hour int) (domain.Trigger, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return domain.Trigger{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArgument, expr, err)
	}
	return domain.Trigger{
		Name:       name,
		Kind:       kind,
		Minute:     minute,
		Hour:       hour,
		Expression: expr,
		Schedule:   sched,
	}, nil
}

func parseCron(name, expr string) (domain.Trigger, error) {
	normalized, err := normalizeQuartz(expr)
	if err == nil {
		var sched cron.Schedule
		if sched, err = parser.Parse(normalized); err == nil {
			return domain.Trigger{
				Name:       name,
				Kind:       domain.TriggerCron,
				Expression: expr,
				Schedule:   sched,
			}, nil
		}
	}

	return domain.Trigger{}, fmt.Errorf(
		"%w: %s: %v. Please remove cron expression if you wish to disable %s else fix the CRON expression and try again!",
		domain.ErrInvalidCron, expr, err, name)
}

// normalizeQuartz rewrites a Quartz expression into the parser's dialect.
// Quartz form is 7 fields, or 6 fields with a "?". Its optional year must be
// a wildcard, and its numeric weekdays run from 1 (Sunday) to 7 (Saturday).
// Other expressions are returned unchanged.
func normalizeQuartz(expr string) (string, error) {
	fields := strings.Fields(expr)
	quartz := len(fields) == 7 || (len(fields) == 6 && strings.Contains(expr, "?"))
	if !quartz {
		return expr, nil
	}

	if len(fields) == 7 {
		if year := fields[6]; year != "*" && year != "?" {
			return "", fmt.Errorf("year field %q is not supported", year)
		}
		fields = fields[:6]
	}

	dow, err := quartzDayOfWeek(fields[5])
	if err != nil {
		return "", err
	}
	fields[5] = dow
	return strings.Join(fields, " "), nil
}

// quartzDayOfWeek shifts numeric weekdays in ranges and lists down by one.
// Names, wildcards and step values are kept.
func quartzDayOfWeek(field string) (string, error) {
	items := strings.Split(field, ",")
	for i, item := range items {
		rng, step, hasStep := strings.Cut(item, "/")
		bounds := strings.Split(rng, "-")
		for j, bound := range bounds {
			day, err := strconv.Atoi(bound)
			if err != nil {
				continue
			}
			if day < 1 || day > 7 {
				return "", fmt.Errorf("day of week %d is out of range 1-7", day)
			}
			bounds[j] = strconv.Itoa(day - 1)
		}
		items[i] = strings.Join(bounds, "-")
		if hasStep {
			items[i] += "/" + step
		}
	}
	return strings.Join(items, ","), nil
}
