package checkin

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const DefaultQRCodeTTL = time.Hour

// Payload is the self-contained token embedded in the QR image. It has no
// server-side state and carries no signature; integrity comes from the
// redemption-side re-validation against the live schedule, window and
// attendance records. Freshness is judged solely from Timestamp.
type Payload struct {
	ScheduleID string `json:"scheduleId"`
	PersonID   string `json:"personId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"`
	Timestamp  int64  `json:"timestamp"`
}

func EncodePayload(payload Payload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}
	return string(raw), nil
}

// DecodePayload parses a QR token. All five fields are mandatory; absence of
// any one is a malformed payload.
func DecodePayload(data string) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch {
	case payload.ScheduleID == "":
		return Payload{}, fmt.Errorf("%w: missing scheduleId", ErrMalformedPayload)
	case payload.PersonID == "":
		return Payload{}, fmt.Errorf("%w: missing personId", ErrMalformedPayload)
	case payload.ServiceID == "":
		return Payload{}, fmt.Errorf("%w: missing serviceId", ErrMalformedPayload)
	case payload.Date == "":
		return Payload{}, fmt.Errorf("%w: missing date", ErrMalformedPayload)
	case payload.Timestamp == 0:
		return Payload{}, fmt.Errorf("%w: missing timestamp", ErrMalformedPayload)
	}

	if _, err := time.Parse("2006-01-02", payload.Date); err != nil {
		return Payload{}, fmt.Errorf("%w: invalid date %q", ErrMalformedPayload, payload.Date)
	}

	return payload, nil
}

func (p Payload) IssuedAt() time.Time {
	return time.UnixMilli(p.Timestamp).UTC()
}

// Fresh reports whether the payload is within its ttl at the given instant.
// This freshness ceiling is the only replay defense the token itself has;
// once redeemed, re-redemption is stopped by the existing attendance record,
// not by the codec.
func (p Payload) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(p.IssuedAt()) <= ttl
}
