package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"threecard.com/server/util"
)

// Field names shared by the table's structured log lines.
const (
	MatchIDKey   string = "matchID"
	SessionIDKey string = "sessionID"
	SeatNumKey   string = "seatNo"
	RemoteKey    string = "remote"
	StatusKey    string = "status"
)

// GetZeroLogger returns a console logger tagged with the component name.
// Colours follow COLORIZE_LOG.
func GetZeroLogger(name string, out io.Writer) *zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	output := zerolog.ConsoleWriter{Out: out, NoColor: !util.Env.IsColorizeLog(), TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Str("logger", name).Logger()
	return &logger
}

// SessionLogger scopes base to one participant connection.
func SessionLogger(base zerolog.Logger, sessionID string, remote string) zerolog.Logger {
	return base.With().
		Str(SessionIDKey, sessionID).
		Str(RemoteKey, remote).
		Logger()
}

// MatchLogger scopes base to one pairing of the table.
func MatchLogger(base zerolog.Logger, matchID string, status string) zerolog.Logger {
	return base.With().
		Str(MatchIDKey, matchID).
		Str(StatusKey, status).
		Logger()
}
