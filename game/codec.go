package game

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Codec frames messages as one JSON document per line. The first frame the
// server writes on a connection is the bare seat number.
type Codec struct {
	reader    *bufio.Reader
	writer    io.Writer
	writeLock sync.Mutex
}

func NewCodec(rw io.ReadWriter, maxMessageBytes int) *Codec {
	return &Codec{
		reader: bufio.NewReaderSize(rw, maxMessageBytes),
		writer: rw,
	}
}

func (c *Codec) WriteHandshake(seatNo int) error {
	return c.writeFrame([]byte(strconv.Itoa(seatNo)))
}

func (c *Codec) ReadHandshake() (int, error) {
	line, err := c.readFrame()
	if err != nil {
		return 0, err
	}
	seatNo, err := strconv.Atoi(string(line))
	if err != nil || (seatNo != Seat1 && seatNo != Seat2) {
		return 0, InvalidMessageError{Msg: fmt.Sprintf("Invalid seat handshake [%s]", line)}
	}
	return seatNo, nil
}

func (c *Codec) WriteMessage(msg *RoundMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "Unable to encode round message")
	}
	return c.writeFrame(b)
}

// ReadMessage returns the next round message. A frame that does not decode,
// including one carrying an invalid card, yields InvalidMessageError and the
// stream stays usable. Any other error means the connection is gone.
func (c *Codec) ReadMessage() (*RoundMessage, error) {
	line, err := c.readFrame()
	if err != nil {
		return nil, err
	}
	var msg RoundMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return nil, InvalidMessageError{Msg: fmt.Sprintf("Unable to decode round message: %v", err)}
	}
	return &msg, nil
}

func (c *Codec) writeFrame(b []byte) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	frame := make([]byte, 0, len(b)+1)
	frame = append(frame, b...)
	frame = append(frame, '\n')
	_, err := c.writer.Write(frame)
	return err
}

// readFrame skips blank lines. A line longer than the reader buffer is
// treated as a broken stream.
func (c *Codec) readFrame() ([]byte, error) {
	for {
		line, err := c.reader.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			return nil, errors.New("Frame exceeds the maximum message size")
		}
		if err != nil && (err != io.EOF || len(line) == 0) {
			return nil, err
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			if err == io.EOF {
				return nil, io.EOF
			}
			continue
		}
		return line, nil
	}
}
