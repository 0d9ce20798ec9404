package game

import (
	"threecard.com/server/poker"
)

// RoundMessage is the frame exchanged with a participant in both directions.
// Inbound frames carry the seat's bets and fold flag; outbound frames carry
// everything needed to render the table for the receiving seat.
type RoundMessage struct {
	AnteBet           int        `json:"anteBet"`
	PairPlusBet       int        `json:"pairPlusBet"`
	PlayBet           int        `json:"playBet"`
	TotalWinnings     int        `json:"totalWinnings"`
	PlayerFolded      bool       `json:"playerFolded"`
	GameMessage       string     `json:"gameMessage"`
	DealerCardsHidden bool       `json:"dealerCardsHidden"`
	CurrentTurn       int        `json:"currentTurn"`
	PlayerHand        poker.Hand `json:"playerHand"`
	DealerHand        poker.Hand `json:"dealerHand"`
	OpponentHand      poker.Hand `json:"opponentHand"`
}

// Game and log messages shown to participants.
const (
	MsgWaitingForOpponent = "Waiting for another player to join..."
	MsgWaitingForSecond   = "Waiting for second player..."
	MsgGamePaused         = "Game paused. Waiting for another player to join..."
	MsgPlayerConnected    = "Player %d connected: %s"
	MsgPlayerDisconnected = "Player %d disconnected. Active clients: %d"
	MsgBothConnected      = "Both players connected. Player %d deals."
	MsgCardsDealt         = "Cards Dealt -> Player 1: %s | Player 2: %s | Dealer: [Hidden]"
	MsgDealt              = "Cards dealt. Player %d to act."
	MsgPlayerPlayed       = "Player %d plays $%d."
	MsgPlayerFolded       = "Player %d folded."
	MsgPlayerWins         = "Player %d wins against dealer!"
	MsgPlayerLoses        = "Player %d loses to dealer."
	MsgPlayerTies         = "Player %d ties with dealer."
	MsgWonPairPlus        = " Won Pair Plus: $%d"
	MsgLostPairPlus       = " Lost Pair Plus."
	MsgGameResult         = "Game Result: Player %d | Bet: $%d | Pair Plus: $%d | Play: $%d | %s | Winnings: $%d"
	MsgDealerReveal       = "Dealer reveals %s (%s)"
	MsgActionRejected     = "Rejected action from Player %d: %s"
	MsgWinningsReset      = "Winnings reset for Player %d"
)

func emptyHandIfNil(h poker.Hand) poker.Hand {
	if h == nil {
		return poker.Hand{}
	}
	return h
}

// faceDown masks a hidden hand with one placeholder per dealt card.
func faceDown(h poker.Hand) poker.Hand {
	return make(poker.Hand, len(h))
}
