package domain

import (
	"math/rand/v2"
	"regexp"
)

const (
	bookingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	bookingCodeLength   = 6
)

// BookingCodePattern matches every generated booking code
var BookingCodePattern = regexp.MustCompile(`^(EMG|BLK|REG)-[A-Z0-9]{6}$`)

// BookingCodePrefix maps a service type to its code prefix
func BookingCodePrefix(t ServiceType) string {
	switch t {
	case ServiceEmergency:
		return "EMG"
	case ServiceBulk:
		return "BLK"
	default:
		return "REG"
	}
}

// GenerateBookingCode returns PREFIX-XXXXXX with a random suffix.
// Codes are not unique by construction; the store enforces uniqueness.
func GenerateBookingCode(t ServiceType) string {
	suffix := make([]byte, bookingCodeLength)
	for i := range suffix {
		suffix[i] = bookingCodeAlphabet[rand.IntN(len(bookingCodeAlphabet))]
	}
	return BookingCodePrefix(t) + "-" + string(suffix)
}
