package game

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"threecard.com/server/logging"
	"threecard.com/server/poker"
	"threecard.com/server/util"
)

var matchLogger = log.With().Str("logger_name", "game::match").Logger()

// Match is the authoritative state of the table. Every exported method takes
// the match lock for its whole duration, so dealing, turn changes, readiness
// counting and settlement never interleave between the two sessions.
type Match struct {
	lock sync.Mutex

	id          string
	dealingSeat int
	deck        *poker.Deck
	eventLog    *EventLog

	seats        [NumSeats + 1]*Seat // 0 is unused
	dealerHand   poker.Hand
	dealerHidden bool
	status       MatchStatus
	turn         int
	readyCount   int
	handNum      uint32
}

func NewMatch(config TableConfig, deck *poker.Deck, eventLog *EventLog) *Match {
	if deck == nil {
		deck = poker.NewDeck(nil)
	}
	if eventLog == nil {
		eventLog = NewEventLog(nil, 0)
	}
	dealingSeat := config.DealingSeat
	if dealingSeat != Seat1 && dealingSeat != Seat2 {
		dealingSeat = Seat1
	}
	return &Match{
		dealingSeat:  dealingSeat,
		deck:         deck,
		eventLog:     eventLog,
		dealerHidden: true,
		status:       WaitingForSecondSeat,
		turn:         dealingSeat,
	}
}

// Join gives the listener the lowest free seat. When the second seat fills,
// the match becomes Ready and every seat that has not been told its number
// yet receives it.
func (m *Match) Join(listener SeatListener) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	seatNo := 0
	for no := Seat1; no <= NumSeats; no++ {
		if m.seats[no] == nil {
			seatNo = no
			break
		}
	}
	if seatNo == 0 {
		return 0, ErrTableFull
	}

	m.seats[seatNo] = newSeat(seatNo, listener)
	m.appendLog(fmt.Sprintf(MsgPlayerConnected, seatNo, listener.RemoteAddr()))
	util.Metrics.SetOccupiedSeats(m.occupiedSeats())

	if m.occupiedSeats() < NumSeats {
		m.status = WaitingForSecondSeat
		m.appendLog(MsgWaitingForSecond)
		return seatNo, nil
	}

	m.id = uuid.New().String()
	m.status = Ready
	m.turn = m.dealingSeat
	m.readyCount = 0
	for no := Seat1; no <= NumSeats; no++ {
		seat := m.seats[no]
		if !seat.announced {
			seat.listener.SeatAssigned(no)
			seat.announced = true
		}
	}
	m.appendLog(fmt.Sprintf(MsgBothConnected, m.dealingSeat))
	logger := logging.MatchLogger(matchLogger, m.id, m.status.String())
	logger.Info().Msg("Match is ready")
	return seatNo, nil
}

// Leave releases the seat. The round in progress is abandoned without
// settlement. The remaining seat keeps its cumulative winnings.
func (m *Match) Leave(seatNo int) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if seatNo < Seat1 || seatNo > NumSeats || m.seats[seatNo] == nil {
		return
	}
	m.seats[seatNo] = nil
	occupied := m.occupiedSeats()
	m.appendLog(fmt.Sprintf(MsgPlayerDisconnected, seatNo, occupied))
	util.Metrics.SetOccupiedSeats(occupied)

	for no := Seat1; no <= NumSeats; no++ {
		if m.seats[no] != nil {
			m.seats[no].resetRound()
		}
	}
	m.dealerHand = nil
	m.dealerHidden = true
	m.readyCount = 0
	m.turn = m.dealingSeat

	if occupied == 0 {
		m.status = WaitingForSecondSeat
		return
	}
	m.status = Paused
	m.appendLog(MsgGamePaused)
}

// HandleAction applies one inbound round message from seatNo. Rejected
// actions leave the match untouched and return a protocol violation error;
// nothing is sent back to the participant.
func (m *Match) HandleAction(seatNo int, msg *RoundMessage) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if seatNo < Seat1 || seatNo > NumSeats || m.seats[seatNo] == nil {
		return m.reject(seatNo, InvalidSeatError{SeatNo: seatNo})
	}

	switch m.status {
	case Ready:
		if seatNo != m.turn {
			return m.reject(seatNo, NotYourTurnError{SeatNo: seatNo, CurrentTurn: m.turn})
		}
		m.deal(m.seats[seatNo], msg)
		return nil

	case AwaitingSeatAction:
		if seatNo != m.turn {
			return m.reject(seatNo, NotYourTurnError{SeatNo: seatNo, CurrentTurn: m.turn})
		}
		m.act(m.seats[seatNo], msg)
		return nil

	default:
		return m.reject(seatNo, NotReadyError{Status: m.status})
	}
}

// ResetWinnings zeroes the cumulative winnings of one seat, or of both seats
// when seatNo is 0.
func (m *Match) ResetWinnings(seatNo int) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if seatNo == 0 {
		for no := Seat1; no <= NumSeats; no++ {
			if m.seats[no] != nil {
				m.seats[no].Winnings = 0
				m.appendLog(fmt.Sprintf(MsgWinningsReset, no))
			}
		}
		return nil
	}
	if seatNo < Seat1 || seatNo > NumSeats || m.seats[seatNo] == nil {
		return InvalidSeatError{SeatNo: seatNo}
	}
	m.seats[seatNo].Winnings = 0
	m.appendLog(fmt.Sprintf(MsgWinningsReset, seatNo))
	return nil
}

func (m *Match) ID() string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.id
}

func (m *Match) Status() MatchStatus {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.status
}

func (m *Match) Turn() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.turn
}

func (m *Match) ReadyCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.readyCount
}

func (m *Match) FreeSeats() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return NumSeats - m.occupiedSeats()
}

// LogEvent appends a table level entry such as server start or stop.
func (m *Match) LogEvent(message string) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.appendLog(message)
}

func (m *Match) EventLog() *EventLog {
	return m.eventLog
}

func (m *Match) Snapshot() MatchSnapshot {
	m.lock.Lock()
	defer m.lock.Unlock()

	dealerHand := emptyHandIfNil(m.dealerHand)
	if m.dealerHidden {
		dealerHand = faceDown(m.dealerHand)
	}
	snapshot := MatchSnapshot{
		MatchID:           m.id,
		Status:            m.status.String(),
		HandNum:           m.handNum,
		CurrentTurn:       m.turn,
		ReadyCount:        m.readyCount,
		DealerCardsHidden: m.dealerHidden,
		DealerHand:        dealerHand,
		ActiveClients:     m.occupiedSeats(),
		Seats:             make([]SeatSnapshot, 0, NumSeats),
	}
	for no := Seat1; no <= NumSeats; no++ {
		seat := m.seats[no]
		if seat == nil {
			continue
		}
		snapshot.Seats = append(snapshot.Seats, SeatSnapshot{
			SeatNo:      seat.SeatNo,
			SessionID:   seat.listener.SessionID(),
			Remote:      seat.listener.RemoteAddr(),
			Hand:        emptyHandIfNil(seat.Hand),
			AnteBet:     seat.AnteBet,
			PairPlusBet: seat.PairPlusBet,
			PlayBet:     seat.PlayBet,
			Folded:      seat.Folded,
			Acted:       seat.Acted,
			Winnings:    seat.Winnings,
		})
	}
	return snapshot
}

// deal starts a round. The dealing seat's message carries its Ante and
// Pair Plus bets.
func (m *Match) deal(dealer *Seat, msg *RoundMessage) {
	for no := Seat1; no <= NumSeats; no++ {
		m.seats[no].resetRound()
	}
	dealer.AnteBet = msg.AnteBet
	dealer.PairPlusBet = msg.PairPlusBet

	m.handNum++
	for no := Seat1; no <= NumSeats; no++ {
		m.seats[no].Hand = m.deck.DealHand()
	}
	m.dealerHand = m.deck.DealHand()
	m.dealerHidden = true
	m.readyCount = 0
	m.turn = Seat1
	m.status = AwaitingSeatAction

	util.Metrics.HandDealt()
	m.appendLog(fmt.Sprintf(MsgCardsDealt, m.seats[Seat1].Hand, m.seats[Seat2].Hand))
	m.broadcast(fmt.Sprintf(MsgDealt, m.turn))
}

// act merges the acting seat's bets, advances the turn and resolves the
// round once both seats have acted.
func (m *Match) act(seat *Seat, msg *RoundMessage) {
	seat.AnteBet = msg.AnteBet
	seat.PairPlusBet = msg.PairPlusBet
	seat.Acted = true

	var gameMessage string
	if msg.PlayerFolded {
		// The folding seat forfeits its Ante and Pair Plus right away.
		seat.Folded = true
		seat.PlayBet = 0
		seat.Winnings -= seat.AnteBet + seat.PairPlusBet
		gameMessage = fmt.Sprintf(MsgPlayerFolded, seat.SeatNo)
	} else {
		seat.PlayBet = msg.PlayBet
		gameMessage = fmt.Sprintf(MsgPlayerPlayed, seat.SeatNo, seat.PlayBet)
	}
	m.appendLog(gameMessage)

	m.readyCount++
	m.turn = otherSeat(seat.SeatNo)
	if m.readyCount == NumSeats {
		m.resolve()
		return
	}
	m.broadcast(gameMessage)
}

// resolve reveals the dealer, settles every seat that did not fold, and
// sends exactly one result broadcast.
func (m *Match) resolve() {
	m.status = Resolving
	m.dealerHidden = false
	m.appendLog(fmt.Sprintf(MsgDealerReveal, m.dealerHand, poker.Rank(m.dealerHand)))

	results := make([]string, 0, NumSeats)
	for no := Seat1; no <= NumSeats; no++ {
		seat := m.seats[no]
		var result string
		if seat.Folded {
			result = fmt.Sprintf(MsgPlayerFolded, no)
		} else {
			var net int
			net, result = settle(seat, m.dealerHand)
			seat.Winnings += net
		}
		results = append(results, result)
		m.appendLog(fmt.Sprintf(MsgGameResult, no, seat.AnteBet, seat.PairPlusBet, seat.PlayBet, result, seat.Winnings))
	}

	m.readyCount = 0
	m.turn = m.dealingSeat
	m.status = Ready
	util.Metrics.RoundResolved()
	m.broadcast(strings.Join(results, " | "))
}

// settle computes the net change of a seat that stayed in against the
// dealer. Ante and Play pay double on a win and are lost on a dealer win; a
// tie is a push. Pair Plus is settled on the seat's hand alone: any hand
// above high card pays, anything else loses the stake.
func settle(seat *Seat, dealerHand poker.Hand) (int, string) {
	net := 0
	var message string
	switch poker.Compare(dealerHand, seat.Hand) {
	case poker.PlayerWin:
		net += seat.AnteBet*2 + seat.PlayBet*2
		message = fmt.Sprintf(MsgPlayerWins, seat.SeatNo)
	case poker.DealerWin:
		net -= seat.AnteBet + seat.PlayBet
		message = fmt.Sprintf(MsgPlayerLoses, seat.SeatNo)
	default:
		message = fmt.Sprintf(MsgPlayerTies, seat.SeatNo)
	}

	// Bets are taken as sent, so a negative stake settles with its sign.
	if seat.PairPlusBet == 0 {
		return net, message
	}
	if poker.Rank(seat.Hand) != poker.HighCard {
		pairPlus := poker.SideBetPayout(seat.Hand, seat.PairPlusBet)
		net += pairPlus
		message += fmt.Sprintf(MsgWonPairPlus, pairPlus)
	} else {
		net -= seat.PairPlusBet
		message += MsgLostPairPlus
	}
	return net, message
}

func (m *Match) broadcast(gameMessage string) {
	for no := Seat1; no <= NumSeats; no++ {
		seat := m.seats[no]
		if seat == nil {
			continue
		}
		seat.listener.Deliver(m.roundMessageFor(seat, gameMessage))
	}
}

func (m *Match) roundMessageFor(seat *Seat, gameMessage string) *RoundMessage {
	msg := &RoundMessage{
		AnteBet:           seat.AnteBet,
		PairPlusBet:       seat.PairPlusBet,
		PlayBet:           seat.PlayBet,
		TotalWinnings:     seat.Winnings,
		PlayerFolded:      seat.Folded,
		GameMessage:       gameMessage,
		DealerCardsHidden: m.dealerHidden,
		CurrentTurn:       m.turn,
		PlayerHand:        emptyHandIfNil(seat.Hand),
		DealerHand:        emptyHandIfNil(m.dealerHand),
		OpponentHand:      poker.Hand{},
	}
	if m.dealerHidden {
		msg.DealerHand = faceDown(m.dealerHand)
	}
	if opponent := m.seats[otherSeat(seat.SeatNo)]; opponent != nil {
		msg.OpponentHand = emptyHandIfNil(opponent.Hand)
	}
	return msg
}

func (m *Match) reject(seatNo int, err error) error {
	util.Metrics.ActionRejected()
	m.appendLog(fmt.Sprintf(MsgActionRejected, seatNo, err.Error()))
	return err
}

func (m *Match) occupiedSeats() int {
	count := 0
	for no := Seat1; no <= NumSeats; no++ {
		if m.seats[no] != nil {
			count++
		}
	}
	return count
}

func (m *Match) appendLog(message string) {
	m.eventLog.Append(m.id, message)
}
