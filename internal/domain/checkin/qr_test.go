package checkin

import (
	"errors"
	"testing"
	"time"
)

func TestEncodeDecodePayload(t *testing.T) {
	payload := Payload{
		ScheduleID: "sch-1",
		PersonID:   "p-1",
		ServiceID:  "svc-1",
		Date:       "2024-03-10",
		Timestamp:  1710057600000,
	}

	encoded, err := EncodePayload(payload)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	decoded, err := DecodePayload(encoded)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if decoded != payload {
		t.Fatalf("expected %+v, got %+v", payload, decoded)
	}
}

func TestDecodePayloadNotJSON(t *testing.T) {
	_, err := DecodePayload("not json at all")
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestDecodePayloadMissingFields(t *testing.T) {
	cases := map[string]string{
		"scheduleId": `{"personId":"p","serviceId":"s","date":"2024-03-10","timestamp":1}`,
		"personId":   `{"scheduleId":"sch","serviceId":"s","date":"2024-03-10","timestamp":1}`,
		"serviceId":  `{"scheduleId":"sch","personId":"p","date":"2024-03-10","timestamp":1}`,
		"date":       `{"scheduleId":"sch","personId":"p","serviceId":"s","timestamp":1}`,
		"timestamp":  `{"scheduleId":"sch","personId":"p","serviceId":"s","date":"2024-03-10"}`,
	}

	for field, data := range cases {
		if _, err := DecodePayload(data); !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("missing %s: expected ErrMalformedPayload, got %v", field, err)
		}
	}
}

func TestDecodePayloadBadDate(t *testing.T) {
	_, err := DecodePayload(`{"scheduleId":"sch","personId":"p","serviceId":"s","date":"10/03/2024","timestamp":1}`)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestPayloadFreshness(t *testing.T) {
	issued := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	payload := Payload{Timestamp: issued.UnixMilli()}

	if !payload.Fresh(issued.Add(59*time.Minute), DefaultQRCodeTTL) {
		t.Fatalf("expected payload fresh at 59 minutes")
	}
	if !payload.Fresh(issued.Add(time.Hour), DefaultQRCodeTTL) {
		t.Fatalf("expected payload fresh exactly at the ttl")
	}
	if payload.Fresh(issued.Add(time.Hour+time.Second), DefaultQRCodeTTL) {
		t.Fatalf("expected payload stale past the ttl")
	}
}
