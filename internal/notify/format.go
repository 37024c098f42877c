package notify

import (
	"fmt"
	"html"
	"time"

	"github.com/kariua-parish/parish-site/internal/intention/domain"
)

const submittedAtLayout = "1/2/2006, 3:04:05 PM MST"

// FormatIntentionMessage renders a stored intention as a Telegram HTML
// message. User supplied text is escaped.
func FormatIntentionMessage(intention domain.PrayerIntention, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf(
		"🙏 <b>New Prayer Request</b>\n\n<b>From:</b> %s\n\n<b>Prayer Intention:</b>\n%s\n\n<i>Submitted at: %s</i>",
		html.EscapeString(intention.Name),
		html.EscapeString(intention.Intention),
		intention.CreatedAt.In(loc).Format(submittedAtLayout),
	)
}
