package game

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inbound feeds a fixed client stream to the codec and discards writes.
type inbound struct {
	io.Reader
}

func (inbound) Write(p []byte) (int, error) {
	return len(p), nil
}

func newInboundCodec(input string, maxMessageBytes int) *Codec {
	return NewCodec(inbound{strings.NewReader(input)}, maxMessageBytes)
}

func TestCodecHandshake(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf, 1024)
	require.NoError(t, codec.WriteHandshake(Seat2))
	assert.Equal(t, "2\n", buf.String())

	seatNo, err := codec.ReadHandshake()
	require.NoError(t, err)
	assert.Equal(t, Seat2, seatNo)
}

func TestCodecRejectsBadHandshake(t *testing.T) {
	for _, frame := range []string{"3\n", "0\n", "one\n", "{}\n"} {
		codec := newInboundCodec(frame, 1024)
		_, err := codec.ReadHandshake()
		assert.IsType(t, InvalidMessageError{}, err, "frame %q", frame)
	}
}

func TestCodecMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	codec := NewCodec(&buf, 1024)
	sent := &RoundMessage{
		AnteBet:       10,
		PairPlusBet:   5,
		PlayBet:       10,
		TotalWinnings: -20,
		GameMessage:   "Player 1 plays $10.",
		CurrentTurn:   Seat2,
		PlayerHand:    hand("C2 H10 S14"),
		DealerHand:    faceDown(hand("C3 C4 C5")),
		OpponentHand:  hand("D11 D12 D13"),
	}
	require.NoError(t, codec.WriteMessage(sent))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	received, err := codec.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, sent, received)
}

func TestCodecSkipsUndecodableFrames(t *testing.T) {
	input := strings.Join([]string{
		`not json`,
		``,
		`{"anteBet":10,"playerHand":[{"suit":"X","rank":3}]}`,
		`{"anteBet":10,"playerHand":[{"suit":"H","rank":15}]}`,
		`{"anteBet":10,"playerFolded":true}`,
		`{"playBet":7}`,
	}, "\n")
	codec := newInboundCodec(input, 1024)

	for i := 0; i < 3; i++ {
		_, err := codec.ReadMessage()
		require.Error(t, err)
		assert.True(t, IsProtocolViolation(err), "frame %d: %v", i, err)
	}

	msg, err := codec.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, 10, msg.AnteBet)
	assert.True(t, msg.PlayerFolded)

	// the last frame has no trailing newline
	msg, err = codec.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, 7, msg.PlayBet)

	_, err = codec.ReadMessage()
	assert.Equal(t, io.EOF, err)
}

func TestCodecOversizedFrameIsFatal(t *testing.T) {
	input := `{"gameMessage":"` + strings.Repeat("x", 200) + `"}` + "\n"
	codec := newInboundCodec(input, 64)
	_, err := codec.ReadMessage()
	require.Error(t, err)
	assert.False(t, IsProtocolViolation(err))
}
