package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/grizzco/salmon-rotation-bot/internal/rotation"
)

const (
	messageTitle = "Salmon Run rotation changed!"
	accentColor  = "#ffcc00"
	imageName    = "currentSalmon.png"
)

// Compose builds the notification for one rotation. A blank stageName and
// missing weapon names are allowed; the message degrades instead of the
// pipeline aborting on a translation miss.
func Compose(entry rotation.Entry, stageName string, weaponNames []string, imagePath string) Message {
	var b strings.Builder

	fmt.Fprintf(&b, "Current stage is *%s*!\n", stageName)
	fmt.Fprintf(&b, "*Start: %s*\nEnd: %s\n", slackDate(entry.StartTime), slackDate(entry.EndTime))

	b.WriteString("Weapons:\n")
	for _, name := range weaponNames {
		if name == "" {
			continue
		}
		fmt.Fprintf(&b, "• %s\n", name)
	}

	return Message{
		Title:     messageTitle,
		Body:      b.String(),
		Footer:    fmt.Sprintf("Start %s — End %s", slackDate(entry.StartTime), slackDate(entry.EndTime)),
		Color:     accentColor,
		ImagePath: imagePath,
		Filename:  imageName,
	}
}

// slackDate formats t as a Slack date token rendered in each reader's
// local timezone, with a UTC fallback for clients that don't expand it.
func slackDate(t time.Time) string {
	return fmt.Sprintf("<!date^%d^{date_long} {time}|%s>",
		t.Unix(), t.UTC().Format("2006-01-02 15:04 UTC"))
}
