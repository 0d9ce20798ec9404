package game

import (
	"threecard.com/server/poker"
)

/**
NOTE: Seat numbers are 1 and 2. Index 0 of the seat table is unused.
**/

const (
	NumSeats = 2
	Seat1    = 1
	Seat2    = 2
)

type MatchStatus int

const (
	WaitingForSecondSeat MatchStatus = iota
	Ready
	AwaitingSeatAction
	Resolving
	Paused
)

var matchStatusToString = map[MatchStatus]string{
	WaitingForSecondSeat: "WAITING_FOR_SECOND_SEAT",
	Ready:                "READY",
	AwaitingSeatAction:   "AWAITING_SEAT_ACTION",
	Resolving:            "RESOLVING",
	Paused:               "PAUSED",
}

func (s MatchStatus) String() string {
	return matchStatusToString[s]
}

// SeatListener receives the output of the match for one seat. Calls are made
// while the match lock is held and must not block.
type SeatListener interface {
	SessionID() string
	RemoteAddr() string
	SeatAssigned(seatNo int)
	Deliver(msg *RoundMessage)
}

type Seat struct {
	SeatNo      int
	Hand        poker.Hand
	AnteBet     int
	PairPlusBet int
	PlayBet     int
	Folded      bool
	Acted       bool
	Winnings    int

	listener  SeatListener
	announced bool
}

func newSeat(seatNo int, listener SeatListener) *Seat {
	return &Seat{
		SeatNo:   seatNo,
		listener: listener,
	}
}

// resetRound clears everything except the cumulative winnings.
func (s *Seat) resetRound() {
	s.Hand = nil
	s.AnteBet = 0
	s.PairPlusBet = 0
	s.PlayBet = 0
	s.Folded = false
	s.Acted = false
}

func otherSeat(seatNo int) int {
	if seatNo == Seat1 {
		return Seat2
	}
	return Seat1
}

type SeatSnapshot struct {
	SeatNo      int        `json:"seatNo"`
	SessionID   string     `json:"sessionId"`
	Remote      string     `json:"remote"`
	Hand        poker.Hand `json:"hand"`
	AnteBet     int        `json:"anteBet"`
	PairPlusBet int        `json:"pairPlusBet"`
	PlayBet     int        `json:"playBet"`
	Folded      bool       `json:"folded"`
	Acted       bool       `json:"acted"`
	Winnings    int        `json:"winnings"`
}

type MatchSnapshot struct {
	MatchID           string         `json:"matchId"`
	Status            string         `json:"status"`
	HandNum           uint32         `json:"handNum"`
	CurrentTurn       int            `json:"currentTurn"`
	ReadyCount        int            `json:"readyCount"`
	DealerCardsHidden bool           `json:"dealerCardsHidden"`
	DealerHand        poker.Hand     `json:"dealerHand"`
	ActiveClients     int            `json:"activeClients"`
	Seats             []SeatSnapshot `json:"seats"`
}
