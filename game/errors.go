package game

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrTableFull = errors.New("Both seats are taken")

type InvalidMessageError struct {
	Msg string
}

func (e InvalidMessageError) Error() string {
	return e.Msg
}

type InvalidSeatError struct {
	SeatNo int
}

func (e InvalidSeatError) Error() string {
	return fmt.Sprintf("Seat %d is not occupied", e.SeatNo)
}

// NotReadyError rejects round actions while the table is not paired.
type NotReadyError struct {
	Status MatchStatus
}

func (e NotReadyError) Error() string {
	return fmt.Sprintf("Match is not ready (%s). %s", e.Status, MsgWaitingForOpponent)
}

type NotYourTurnError struct {
	SeatNo      int
	CurrentTurn int
}

func (e NotYourTurnError) Error() string {
	return fmt.Sprintf("Seat %d acted out of turn. Current turn: %d", e.SeatNo, e.CurrentTurn)
}

// IsProtocolViolation reports whether err is a rejected action rather than
// a transport or setup failure.
func IsProtocolViolation(err error) bool {
	switch errors.Cause(err).(type) {
	case NotReadyError, NotYourTurnError, InvalidSeatError, InvalidMessageError:
		return true
	}
	return false
}
