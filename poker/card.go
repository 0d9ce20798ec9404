package poker

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Suit byte

const (
	Clubs    Suit = 'C'
	Diamonds Suit = 'D'
	Hearts   Suit = 'H'
	Spades   Suit = 'S'
)

// Suits in deck generation order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

const (
	MinRank = 2
	Jack    = 11
	Queen   = 12
	King    = 13
	Ace     = 14
	MaxRank = Ace
)

func (s Suit) Valid() bool {
	switch s {
	case Clubs, Diamonds, Hearts, Spades:
		return true
	}
	return false
}

func (s Suit) String() string {
	if s == 0 {
		return ""
	}
	return string(rune(s))
}

type InvalidCardError struct {
	Suit string
	Rank int
}

func (e InvalidCardError) Error() string {
	return fmt.Sprintf("Invalid card suit [%s] rank [%d]", e.Suit, e.Rank)
}

// Card is an immutable suit/rank pair. The zero value is the face-down
// placeholder and is never returned by NewCard.
type Card struct {
	suit Suit
	rank int
}

func NewCard(suit Suit, rank int) (Card, error) {
	if !suit.Valid() || rank < MinRank || rank > MaxRank {
		return Card{}, InvalidCardError{Suit: suit.String(), Rank: rank}
	}
	return Card{suit: suit, rank: rank}, nil
}

// MustCard parses a card such as "H7" or "C12" and panics if it is invalid.
func MustCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCard parses the suit letter followed by the numeric rank.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, InvalidCardError{Suit: s}
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return Card{}, InvalidCardError{Suit: s[:1]}
	}
	return NewCard(Suit(strings.ToUpper(s[:1])[0]), rank)
}

func (c Card) Suit() Suit {
	return c.suit
}

func (c Card) Rank() int {
	return c.rank
}

func (c Card) FaceDown() bool {
	return c.suit == 0
}

func (c Card) String() string {
	if c.FaceDown() {
		return "??"
	}
	return c.suit.String() + strconv.Itoa(c.rank)
}

type wireCard struct {
	Suit string `json:"suit"`
	Rank int    `json:"rank"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireCard{Suit: c.suit.String(), Rank: c.rank})
}

func (c *Card) UnmarshalJSON(b []byte) error {
	var w wireCard
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Suit == "" && w.Rank == 0 {
		*c = Card{}
		return nil
	}
	if len(w.Suit) != 1 {
		return InvalidCardError{Suit: w.Suit, Rank: w.Rank}
	}
	card, err := NewCard(Suit(w.Suit[0]), w.Rank)
	if err != nil {
		return err
	}
	*c = card
	return nil
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	b.WriteString("[")
	for i, c := range cards {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(c.String())
	}
	b.WriteString("]")
	return b.String()
}
