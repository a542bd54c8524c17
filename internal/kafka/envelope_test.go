package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
)

type recorder struct {
	key, value []byte
	headers    []kafka.Header
}

func (r *recorder) Publish(key, value []byte, headers ...kafka.Header) {
	r.key, r.value, r.headers = key, value, headers
}

type payload struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

func TestPublishEvent(t *testing.T) {
	rec := &recorder{}
	PublishEvent(rec, "djikoe-web", "PesananDibuat", "p-1", "req-9", payload{ID: "p-1", Total: 180000})

	if string(rec.key) != "p-1" {
		t.Fatalf("unexpected key: %q", rec.key)
	}
	env, err := UnmarshalEnvelope(rec.value)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.EventType != "PesananDibuat" || env.EventVersion != 1 || env.EventID == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Producer != "djikoe-web" || env.CorrelationID != "p-1" || env.TraceID != "req-9" {
		t.Fatalf("unexpected envelope meta: %+v", env)
	}
	p, err := UnwrapPayload[payload](env.Payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if p.Total != 180000 {
		t.Fatalf("unexpected payload: %+v", p)
	}
	if len(rec.headers) != 2 || string(rec.headers[0].Value) != "PesananDibuat" {
		t.Fatalf("unexpected headers: %+v", rec.headers)
	}
}

func TestUnmarshalEnvelopeRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalEnvelope([]byte("bukan json")); err == nil {
		t.Fatalf("expected error")
	}
}
