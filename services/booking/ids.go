package booking

import (
	"crypto/rand"
	"fmt"
	"time"
)

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// randomSuffix returns n uppercase alphanumeric characters.
func randomSuffix(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(out)
}

// timeComponent returns the last 8 digits of the epoch-millisecond clock.
func timeComponent(now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	return ms[len(ms)-8:]
}

// NewBookingID mints a booking identifier. The format is part of the
// public contract: "TL" + last-8-digits-of-epoch-millis + 4 uppercase
// alphanumerics, e.g. TL38204917XK2B.
func NewBookingID(now time.Time) string {
	return "TL" + timeComponent(now) + randomSuffix(4)
}

// NewTransactionID mints a payment transaction identifier with the same
// shape under the "TXN" prefix.
func NewTransactionID(now time.Time) string {
	return "TXN" + timeComponent(now) + randomSuffix(4)
}
