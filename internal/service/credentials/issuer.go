package credentials

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

const (
	qrPrefix    = "BOOKING"
	qrPinMarker = "PIN"
	pinSpace    = 10000
)

// Issuer выпускает PIN и QR строку для доступа на парковку
type Issuer struct {
	random io.Reader
}

// NewIssuer создает выпускающий компонент на crypto/rand
func NewIssuer() *Issuer {
	return &Issuer{random: rand.Reader}
}

// NewIssuerWithSource создает выпускающий компонент с заданным источником случайности
func NewIssuerWithSource(random io.Reader) *Issuer {
	return &Issuer{random: random}
}

// IssuePin возвращает равномерно распределенный PIN 0000-9999
func (i *Issuer) IssuePin() (string, error) {
	n, err := rand.Int(i.random, big.NewInt(pinSpace))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRandom, err)
	}
	return fmt.Sprintf("%0*d", domain.AccessPinLength, n.Int64()), nil
}

// IssueQRPayload кодирует идентификатор бронирования и PIN: BOOKING:{id}:PIN:{pin}
func (i *Issuer) IssueQRPayload(bookingID int64, pin string) (string, error) {
	if bookingID <= 0 {
		return "", fmt.Errorf("%w: booking id must be positive", domain.ErrInvalidInput)
	}
	if !IsWellFormedPin(pin) {
		return "", fmt.Errorf("%w: pin must be %d digits", domain.ErrInvalidInput, domain.AccessPinLength)
	}
	return fmt.Sprintf("%s:%d:%s:%s", qrPrefix, bookingID, qrPinMarker, pin), nil
}

// ParseQRPayload разбирает строку, выпущенную IssueQRPayload
func ParseQRPayload(payload string) (bookingID int64, pin string, err error) {
	parts := strings.Split(strings.TrimSpace(payload), ":")
	if len(parts) != 4 || parts[0] != qrPrefix || parts[2] != qrPinMarker {
		return 0, "", ErrMalformedPayload
	}

	bookingID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || bookingID <= 0 {
		return 0, "", ErrMalformedPayload
	}

	pin = parts[3]
	if !IsWellFormedPin(pin) {
		return 0, "", ErrMalformedPayload
	}

	return bookingID, pin, nil
}

// IsWellFormedPin проверяет, что PIN состоит ровно из четырех цифр
func IsWellFormedPin(pin string) bool {
	if len(pin) != domain.AccessPinLength {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
