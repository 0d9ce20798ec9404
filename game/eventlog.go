package game

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"threecard.com/server/logging"
)

var eventLogger = log.With().Str("logger_name", "game::eventlog").Logger()

type LogEntry struct {
	Seq     uint64    `json:"seq"`
	Time    time.Time `json:"time"`
	MatchID string    `json:"matchId"`
	Message string    `json:"message"`
}

// EventPublisher mirrors log entries to an external observer.
type EventPublisher interface {
	Publish(entry LogEntry) error
	Close() error
}

// EventLog is the append-only human readable log of the table. Entries are
// handed to the publisher from a separate goroutine so that a slow broker
// never holds up the match.
type EventLog struct {
	lock    sync.RWMutex
	entries []LogEntry
	nextSeq uint64
	closed  bool

	publisher EventPublisher
	chPublish chan LogEntry
	done      chan struct{}
	closeOnce sync.Once
}

func NewEventLog(publisher EventPublisher, queueSize int) *EventLog {
	l := &EventLog{
		nextSeq:   1,
		publisher: publisher,
		done:      make(chan struct{}),
	}
	if publisher != nil {
		l.chPublish = make(chan LogEntry, queueSize)
		go l.publishLoop()
	} else {
		close(l.done)
	}
	return l
}

func (l *EventLog) Append(matchID string, message string) LogEntry {
	l.lock.Lock()
	entry := LogEntry{
		Seq:     l.nextSeq,
		Time:    time.Now(),
		MatchID: matchID,
		Message: message,
	}
	l.nextSeq++
	l.entries = append(l.entries, entry)
	if l.chPublish != nil && !l.closed {
		select {
		case l.chPublish <- entry:
		default:
			eventLogger.Warn().Uint64("seq", entry.Seq).Msg("Publish queue is full. Dropping log entry.")
		}
	}
	l.lock.Unlock()

	eventLogger.Info().Str(logging.MatchIDKey, matchID).Msg(message)
	return entry
}

// Since returns the entries with a sequence number greater than seq.
func (l *EventLog) Since(seq uint64) []LogEntry {
	l.lock.RLock()
	defer l.lock.RUnlock()
	start := len(l.entries)
	for i, e := range l.entries {
		if e.Seq > seq {
			start = i
			break
		}
	}
	entries := make([]LogEntry, len(l.entries)-start)
	copy(entries, l.entries[start:])
	return entries
}

func (l *EventLog) Len() int {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return len(l.entries)
}

// Close stops publishing and waits for queued entries to be handed over.
func (l *EventLog) Close() {
	l.closeOnce.Do(func() {
		l.lock.Lock()
		l.closed = true
		if l.chPublish != nil {
			close(l.chPublish)
		}
		l.lock.Unlock()
	})
	<-l.done
}

func (l *EventLog) publishLoop() {
	defer func() {
		if err := l.publisher.Close(); err != nil {
			eventLogger.Error().Msgf("Error while closing event publisher: %v", err)
		}
		close(l.done)
	}()
	for entry := range l.chPublish {
		if err := l.publisher.Publish(entry); err != nil {
			eventLogger.Error().Uint64("seq", entry.Seq).Msgf("Failed to publish log entry: %v", err)
		}
	}
}
