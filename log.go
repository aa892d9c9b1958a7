package sequencer

import (
	"log/slog"

	"github.com/google/uuid"
)

func attrID(id uuid.UUID) slog.Attr {
	return slog.String("sequencer_id", id.String())
}

func attrGroup(group string) slog.Attr {
	return slog.String("group", group)
}

func attrCursor(cursor int) slog.Attr {
	return slog.Int("cursor", cursor)
}

func attrSteps(n int) slog.Attr {
	return slog.Int("steps", n)
}

func attrError(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}
