package gesture

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// level controls coordinator event verbosity, set once at startup from
// GT_WORKER_LOG_LEVEL.
type level int

const (
	levelNone level = iota
	levelError
	levelWarn
	levelInfo
	levelDebug
	levelTrace
)

func (l level) String() string {
	switch l {
	case levelError:
		return "error"
	case levelWarn:
		return "warn"
	case levelInfo:
		return "info"
	case levelDebug:
		return "debug"
	case levelTrace:
		return "trace"
	default:
		return "none"
	}
}

func parseLevel(raw string) level {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "error", "err", "1":
		return levelError
	case "warn", "warning", "2":
		return levelWarn
	case "info", "3":
		return levelInfo
	case "debug", "4":
		return levelDebug
	case "trace", "5":
		return levelTrace
	default:
		return levelNone
	}
}

var activeLevel = parseLevel(os.Getenv("GT_WORKER_LOG_LEVEL"))

// logEvent writes one structured JSON event line when the level is enabled.
func logEvent(lvl level, event string, fields map[string]any) {
	if activeLevel == levelNone || lvl > activeLevel {
		return
	}

	payload := map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     lvl.String(),
		"component": "gesture_coordinator",
		"event":     event,
	}
	for k, v := range fields {
		payload[k] = v
	}
	b, err := json.Marshal(payload)
	if err != nil {
		log.Printf("gesture: failed to marshal log event %s: %v", event, err)
		return
	}
	log.Printf("%s", b)
}
