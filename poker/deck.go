package poker

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

const (
	DeckSize = 52
	HandSize = 3
)

var fullDeck []Card

func init() {
	fullDeck = initializeFullCards()
}

// Deck is not safe for concurrent use. The match owning it serializes access.
type Deck struct {
	cards   []Card
	randGen *rand.Rand
}

func newSeed() rand.Source {
	var b [8]byte
	_, err := crypto_rand.Read(b[:])
	if err != nil {
		panic("cannot seed math/rand package with cryptographically secure random number generator")
	}
	return rand.NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// NewDeck returns a shuffled deck. A nil source seeds from crypto/rand.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = newSeed()
	}
	deck := &Deck{randGen: rand.New(source)}
	deck.Reset()
	return deck
}

func NewDeckNoShuffle() *Deck {
	deck := &Deck{randGen: rand.New(newSeed())}
	deck.cards = make([]Card, len(fullDeck))
	copy(deck.cards, fullDeck)
	return deck
}

// Reset regenerates all 52 cards and shuffles them.
func (deck *Deck) Reset() *Deck {
	deck.cards = make([]Card, len(fullDeck))
	copy(deck.cards, fullDeck)
	deck.randGen.Shuffle(len(deck.cards), func(i, j int) {
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	})
	return deck
}

func (deck *Deck) Remaining() int {
	return len(deck.cards)
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

// Draw removes n cards from the front of the deck.
func (deck *Deck) Draw(n int) []Card {
	if n > len(deck.cards) {
		n = len(deck.cards)
	}
	cards := make([]Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards
}

// DealHand draws a 3 card hand, regenerating the deck first when fewer than
// 3 cards are left.
func (deck *Deck) DealHand() Hand {
	if deck.Remaining() < HandSize {
		deck.Reset()
	}
	return Hand(deck.Draw(HandSize))
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}

func initializeFullCards() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, Card{suit: suit, rank: rank})
		}
	}
	return cards
}
