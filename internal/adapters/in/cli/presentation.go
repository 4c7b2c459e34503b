package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bnema/keyflush/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/keyflush/internal/app"
	"github.com/bnema/keyflush/internal/domain"
)

const runTimeLayout = "2006-01-02 15:04:05"

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func cliRenderTitle(msg string) string {
	return styles.Theme.Title.Render(msg)
}

func cliRenderMuted(msg string) string {
	return styles.Theme.Muted.Render(msg)
}

func cliRenderListItem(msg string) string {
	return styles.RenderListItem(msg)
}

func cliRenderMeta(label, value string) string {
	return styles.Theme.Bold.Render(label) + " " + styles.Theme.Muted.Render(value)
}

func cliRenderSuccess(msg string) string {
	return styles.RenderSuccess(msg)
}

func cliRenderError(msg string) string {
	return styles.RenderError(msg)
}

func cliRenderWarning(msg string) string {
	return styles.RenderWarning(msg)
}

func cliRenderInfo(msg string) string {
	return styles.RenderInfo(msg)
}

// renderRunStatus badges a recorded run outcome.
func renderRunStatus(status domain.RunStatus) string {
	return styles.RenderBadge(string(status))
}

// renderSelection tells whether "all" picks up the keyspace.
func renderSelection(info app.KeyspaceInfo) string {
	if info.Protected {
		return styles.RenderBadge("protected")
	}
	return "yes"
}

func describeTrigger(t domain.Trigger) string {
	switch t.Kind {
	case domain.TriggerHourly:
		return "hourly at minute " + strconv.Itoa(t.Minute)
	case domain.TriggerDaily:
		return fmt.Sprintf("daily at %02d:00", t.Hour)
	case domain.TriggerCron:
		return "cron " + t.Expression
	default:
		return string(t.Kind)
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.String()
	}
	return d.Round(time.Millisecond).String()
}

func formatRunTime(t time.Time) string {
	return t.Local().Format(runTimeLayout)
}

// shortRunID keeps the first UUID group.
func shortRunID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
