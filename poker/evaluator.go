package poker

import (
	"sort"
)

// RankClass orders 3 card hand categories. Higher values beat lower ones.
type RankClass int

const (
	HighCard RankClass = iota
	Pair
	Flush
	Straight
	ThreeOfAKind
	StraightFlush
)

var rankClassToString = map[RankClass]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	StraightFlush: "Straight Flush",
}

func (r RankClass) String() string {
	return rankClassToString[r]
}

// Pair Plus multipliers.
var sideBetMultipliers = map[RankClass]int{
	StraightFlush: 40,
	ThreeOfAKind:  30,
	Straight:      6,
	Flush:         3,
	Pair:          1,
	HighCard:      0,
}

type Outcome int

const (
	Tie Outcome = iota
	DealerWin
	PlayerWin
)

func (o Outcome) String() string {
	switch o {
	case DealerWin:
		return "DealerWin"
	case PlayerWin:
		return "PlayerWin"
	default:
		return "Tie"
	}
}

// Hand is the sequence of cards held by a seat or the dealer. Hands are
// replaced at each deal, never modified in place.
type Hand []Card

func (h Hand) String() string {
	return CardsToString(h)
}

// Rank classifies a hand. The first matching category wins, checked from
// the strongest down. Hands with fewer than 3 cards are HighCard.
func Rank(hand Hand) RankClass {
	if len(hand) < HandSize {
		return HighCard
	}
	switch {
	case isFlush(hand) && isStraight(hand):
		return StraightFlush
	case isThreeOfAKind(hand):
		return ThreeOfAKind
	case isStraight(hand):
		return Straight
	case isFlush(hand):
		return Flush
	case isPair(hand):
		return Pair
	}
	return HighCard
}

// Compare settles the dealer against one player.
func Compare(dealer Hand, player Hand) Outcome {
	dealerClass := Rank(dealer)
	playerClass := Rank(player)
	if playerClass > dealerClass {
		return PlayerWin
	}
	if playerClass < dealerClass {
		return DealerWin
	}

	dealerRanks := ranksDescending(dealer)
	playerRanks := ranksDescending(player)
	for i := 0; i < HandSize; i++ {
		if playerRanks[i] > dealerRanks[i] {
			return PlayerWin
		}
		if playerRanks[i] < dealerRanks[i] {
			return DealerWin
		}
	}
	return Tie
}

// SideBetPayout returns the Pair Plus payout for bet. Bets are not validated.
func SideBetPayout(hand Hand, bet int) int {
	return sideBetMultipliers[Rank(hand)] * bet
}

// ranksDescending pads short hands with zero ranks.
func ranksDescending(hand Hand) [HandSize]int {
	var ranks [HandSize]int
	for i := 0; i < len(hand) && i < HandSize; i++ {
		ranks[i] = hand[i].Rank()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks[:])))
	return ranks
}

func isStraight(hand Hand) bool {
	ranks := ranksDescending(hand)
	return ranks[0]-ranks[1] == 1 && ranks[1]-ranks[2] == 1
}

func isFlush(hand Hand) bool {
	return hand[0].Suit() == hand[1].Suit() && hand[1].Suit() == hand[2].Suit()
}

func isThreeOfAKind(hand Hand) bool {
	return hand[0].Rank() == hand[1].Rank() && hand[1].Rank() == hand[2].Rank()
}

func isPair(hand Hand) bool {
	return hand[0].Rank() == hand[1].Rank() ||
		hand[1].Rank() == hand[2].Rank() ||
		hand[0].Rank() == hand[2].Rank()
}
