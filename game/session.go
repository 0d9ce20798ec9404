package game

import (
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"threecard.com/server/logging"
	"threecard.com/server/util"
)

var sessionLogger = log.With().Str("logger_name", "game::session").Logger()

type outbound struct {
	handshake int
	msg       *RoundMessage
}

// PlayerSession owns one participant connection. The reader goroutine turns
// inbound frames into match actions; a single writer goroutine drains the
// send queue so that frames reach the participant in the order the match
// produced them.
type PlayerSession struct {
	id     string
	conn   net.Conn
	codec  *Codec
	match  *Match
	seatNo int

	chSend     chan outbound
	paired     chan struct{}
	pairedOnce sync.Once
	closed     chan struct{}
	closeOnce  sync.Once
	onClose    func(*PlayerSession)

	logger zerolog.Logger
}

func NewPlayerSession(conn net.Conn, match *Match, config TableConfig, onClose func(*PlayerSession)) *PlayerSession {
	id := uuid.New().String()
	return &PlayerSession{
		id:      id,
		conn:    conn,
		codec:   NewCodec(conn, config.MaxMessageBytes),
		match:   match,
		chSend:  make(chan outbound, config.SendQueueSize),
		paired:  make(chan struct{}),
		closed:  make(chan struct{}),
		onClose: onClose,
		logger:  logging.SessionLogger(sessionLogger, id, conn.RemoteAddr().String()),
	}
}

func (s *PlayerSession) SessionID() string {
	return s.id
}

func (s *PlayerSession) RemoteAddr() string {
	return s.conn.RemoteAddr().String()
}

func (s *PlayerSession) SeatNo() int {
	return s.seatNo
}

// SeatAssigned queues the seat handshake ahead of any round message and
// releases the pairing wait.
func (s *PlayerSession) SeatAssigned(seatNo int) {
	s.enqueue(outbound{handshake: seatNo})
	s.pairedOnce.Do(func() {
		close(s.paired)
	})
}

func (s *PlayerSession) Deliver(msg *RoundMessage) {
	s.enqueue(outbound{msg: msg})
}

// Paired is closed once the opponent has joined.
func (s *PlayerSession) Paired() <-chan struct{} {
	return s.paired
}

func (s *PlayerSession) Done() <-chan struct{} {
	return s.closed
}

// Close is safe to call more than once and from any goroutine. It unblocks
// the pairing wait and the reader.
func (s *PlayerSession) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Msgf("Error while closing connection: %v", err)
		}
	})
}

// Run blocks until the connection is gone or the session is closed. The seat
// is released and the connection closed on every return path.
func (s *PlayerSession) Run() {
	defer func() {
		if err := recover(); err != nil {
			s.logger.Error().Int(logging.SeatNumKey, s.seatNo).Msgf("Session returning due to panic: %v", err)
		}
		s.match.Leave(s.seatNo)
		s.Close()
		if s.onClose != nil {
			s.onClose(s)
		}
		s.logger.Info().Int(logging.SeatNumKey, s.seatNo).Msg("Session ended")
	}()

	go s.writeLoop()

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		s.readLoop()
	}()

	select {
	case <-s.paired:
		s.logger.Info().Int(logging.SeatNumKey, s.seatNo).Msg("Opponent joined")
	case <-readDone:
		return
	case <-s.closed:
		return
	}

	select {
	case <-readDone:
	case <-s.closed:
	}
}

func (s *PlayerSession) readLoop() {
	for {
		msg, err := s.codec.ReadMessage()
		if err != nil {
			if IsProtocolViolation(err) {
				s.logger.Warn().Int(logging.SeatNumKey, s.seatNo).Msg(err.Error())
				continue
			}
			if err != io.EOF {
				s.logger.Info().Int(logging.SeatNumKey, s.seatNo).Msgf("Read failed: %v", err)
			}
			return
		}
		err = s.match.HandleAction(s.seatNo, msg)
		if err != nil {
			s.logger.Debug().Int(logging.SeatNumKey, s.seatNo).Msgf("Action rejected: %v", err)
		}
	}
}

// writeLoop delivers on a best effort basis. A failed write is logged and the
// reader's failure is left to report the disconnect.
func (s *PlayerSession) writeLoop() {
	for {
		select {
		case <-s.closed:
			return
		case out := <-s.chSend:
			var err error
			if out.msg == nil {
				err = s.codec.WriteHandshake(out.handshake)
			} else {
				err = s.codec.WriteMessage(out.msg)
			}
			if err != nil {
				util.Metrics.SendFailed()
				s.logger.Warn().Int(logging.SeatNumKey, s.seatNo).Msgf("Error sending data to player: %v", err)
			}
		}
	}
}

func (s *PlayerSession) enqueue(out outbound) {
	select {
	case <-s.closed:
		return
	default:
	}
	select {
	case s.chSend <- out:
	default:
		util.Metrics.SendFailed()
		s.logger.Warn().Int(logging.SeatNumKey, s.seatNo).Msg("Send queue is full. Dropping message.")
	}
}
