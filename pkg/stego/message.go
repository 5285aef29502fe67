package stego

import (
	"errors"
	"fmt"
	"strings"
)

const terminator = byte(0)

var ErrUnencodableMessage = errors.New("message contains characters that do not fit in 8 bits")

// EncodeMessage turns text into the embedded byte stream: one byte per
// character code followed by a zero terminator. Characters must be in 1..255.
func EncodeMessage(message string) ([]byte, error) {
	payload := make([]byte, 0, len(message)+1)
	for idx, r := range message {
		if r < 1 || r > 255 {
			return nil, fmt.Errorf("%w: byte %d", ErrUnencodableMessage, idx)
		}
		payload = append(payload, byte(r))
	}
	return append(payload, terminator), nil
}

// PayloadBits is the number of bits EncodeMessage produces for message,
// without validating its characters.
func PayloadBits(message string) int {
	return (len([]rune(message)) + 1) * 8
}

func decodeMessage(payload []byte) string {
	var sb strings.Builder
	sb.Grow(len(payload))
	for _, b := range payload {
		sb.WriteRune(rune(b))
	}
	return sb.String()
}
