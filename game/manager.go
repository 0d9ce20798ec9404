package game

import (
	"fmt"
	"net"
	"sync"

	cmap "github.com/orcaman/concurrent-map"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"threecard.com/server/logging"
	"threecard.com/server/util"
)

var managerLogger = log.With().Str("logger_name", "game::manager").Logger()

// SessionManager accepts participant connections for one table and
// supervises their sessions.
type SessionManager struct {
	config   TableConfig
	match    *Match
	sessions cmap.ConcurrentMap

	newSession func(conn net.Conn, match *Match, config TableConfig, onClose func(*PlayerSession)) *PlayerSession

	lock     sync.Mutex
	listener net.Listener
	running  bool
	wg       sync.WaitGroup
}

func NewSessionManager(config TableConfig, match *Match) *SessionManager {
	return &SessionManager{
		config:   config,
		match:    match,
		sessions: cmap.New(),

		newSession: NewPlayerSession,
	}
}

// Start listens on port and serves until Stop is called. A listen failure is
// returned to the caller and nothing is started.
func (m *SessionManager) Start(port int) error {
	if _, err := m.Listen(port); err != nil {
		return err
	}
	return m.Serve()
}

// Listen binds the table port. Port 0 picks a free port.
func (m *SessionManager) Listen(port int) (net.Addr, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.listener != nil {
		return nil, fmt.Errorf("Table is already listening on %s", m.listener.Addr())
	}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to listen on port %d", port)
	}
	m.listener = listener
	m.running = true
	m.match.LogEvent(fmt.Sprintf("Server started on port: %d", port))
	return listener.Addr(), nil
}

// Serve runs the accept loop. It returns nil after Stop.
func (m *SessionManager) Serve() error {
	m.lock.Lock()
	listener := m.listener
	m.lock.Unlock()
	if listener == nil {
		return errors.New("Serve called before Listen")
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			if !m.isRunning() {
				return nil
			}
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				managerLogger.Warn().Msgf("Temporary accept error: %v", err)
				continue
			}
			return errors.Wrap(err, "Accept failed")
		}
		m.handleConnection(conn)
	}
}

// Stop closes the listener and every live session and waits for the seats to
// be released. It is safe to call when the table is not running.
func (m *SessionManager) Stop() {
	m.lock.Lock()
	if !m.running {
		m.lock.Unlock()
		return
	}
	m.running = false
	listener := m.listener
	m.listener = nil
	m.lock.Unlock()

	if err := listener.Close(); err != nil {
		managerLogger.Warn().Msgf("Error while closing listener: %v", err)
	}
	for item := range m.sessions.IterBuffered() {
		item.Val.(*PlayerSession).Close()
	}
	m.wg.Wait()
	m.match.LogEvent("Server stopped.")
}

func (m *SessionManager) Match() *Match {
	return m.match
}

func (m *SessionManager) ActiveSessions() int {
	return m.sessions.Count()
}

func (m *SessionManager) isRunning() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.running
}

func (m *SessionManager) handleConnection(conn net.Conn) {
	remote := conn.RemoteAddr().String()
	managerLogger.Info().Str(logging.RemoteKey, remote).Msg("New client connected")

	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.running {
		conn.Close()
		return
	}

	// Join runs only under m.lock, so a free seat seen here is still free below.
	if m.match.FreeSeats() == 0 {
		m.refuse(conn, ErrTableFull)
		return
	}
	session := m.newSession(conn, m.match, m.config, m.removeSession)
	seatNo, err := m.match.Join(session)
	if err != nil {
		m.refuse(conn, err)
		return
	}
	session.seatNo = seatNo
	m.sessions.Set(session.SessionID(), session)
	util.Metrics.ConnectionAccepted()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		session.Run()
	}()
}

func (m *SessionManager) refuse(conn net.Conn, reason error) {
	util.Metrics.ConnectionRefused()
	managerLogger.Warn().Str(logging.RemoteKey, conn.RemoteAddr().String()).Msgf("Refusing connection: %v", reason)
	conn.Close()
}

func (m *SessionManager) removeSession(s *PlayerSession) {
	m.sessions.Remove(s.SessionID())
}
