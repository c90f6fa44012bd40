package board

import (
	"strings"
	"time"
)

var lineEndings = strings.NewReplacer("\r", "", "\n", "")

func stripLineEndings(data []byte) string {
	return lineEndings.Replace(string(data))
}

// DecodeReading removes line terminators from a reply.
func DecodeReading(data []byte) Reading {
	return Reading(stripLineEndings(data))
}

// ReadResponse makes a single read attempt and decodes it.
// An empty Reading is returned as-is if nothing arrives in time.
func ReadResponse(t Transport, timeout time.Duration) (Reading, error) {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	data, err := t.ReadAvailable(timeout)
	if err != nil {
		return "", err
	}
	return DecodeReading(data), nil
}
