package nats

import (
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	natsgo "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"threecard.com/server/game"
)

func TestEventPublisherPublishesToMatchSubject(t *testing.T) {
	s := natsserver.RunRandClientPortServer()
	defer s.Shutdown()

	nc, err := natsgo.Connect(s.ClientURL())
	require.NoError(t, err)
	defer nc.Close()

	sub, err := nc.SubscribeSync(GetTableLogSubject("threecard"))
	require.NoError(t, err)
	require.NoError(t, nc.Flush())

	publisher, err := Connect(s.ClientURL(), "threecard")
	require.NoError(t, err)

	entry := game.LogEntry{
		Seq:     7,
		Time:    time.Now().UTC().Truncate(time.Millisecond),
		MatchID: "m1",
		Message: "Player 1 wins against dealer!",
	}
	require.NoError(t, publisher.Publish(entry))
	require.NoError(t, publisher.Close())

	msg, err := sub.NextMsg(5 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, "threecard.m1.log", msg.Subject)

	var received game.LogEntry
	require.NoError(t, json.Unmarshal(msg.Data, &received))
	assert.Equal(t, entry.Seq, received.Seq)
	assert.Equal(t, entry.Message, received.Message)
	assert.True(t, entry.Time.Equal(received.Time))
}
