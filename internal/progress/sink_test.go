package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestChannelSinkEmitAddsTimestampAndForwardsEvent(t *testing.T) {
	ch := make(chan Event, 1)
	sink := NewChannelSink(ch)

	sink.Emit(Event{
		Type:   EventScanStarted,
		ScanID: "scan-1",
	})

	select {
	case got := <-ch:
		if got.Type != EventScanStarted {
			t.Fatalf("expected type %q, got %q", EventScanStarted, got.Type)
		}
		if got.ScanID != "scan-1" {
			t.Fatalf("expected scan id scan-1, got %q", got.ScanID)
		}
		if got.At.IsZero() {
			t.Fatal("expected timestamp to be auto-populated")
		}
		if got.At.Location() != time.UTC {
			t.Fatalf("expected UTC timestamp location, got %q", got.At.Location())
		}
	default:
		t.Fatal("expected event to be sent to channel")
	}
}

func TestChannelSinkEmitDropsOnBackpressureWithoutBlocking(t *testing.T) {
	const ciTimeout = 5 * time.Second

	ch := make(chan Event, 1)
	ch <- Event{Type: EventDetectorStarted, Detector: "secrets"}
	sink := NewChannelSink(ch)

	done := make(chan struct{})
	go func() {
		sink.Emit(Event{Type: EventDetectorStarted, Detector: "entropy"})
		close(done)
	}()

	select {
	case <-done:
		// Expected: emit should return immediately and drop when channel is full.
	case <-time.After(ciTimeout):
		t.Fatal("expected Emit to return without blocking on full channel")
	}

	select {
	case got := <-ch:
		if got.Detector != "secrets" {
			t.Fatalf("expected original buffered event to remain, got %q", got.Detector)
		}
	case <-time.After(ciTimeout):
		t.Fatal("expected original buffered event to remain available")
	}

	select {
	case extra := <-ch:
		t.Fatalf("expected dropped event, but received %+v", extra)
	default:
	}
}

func TestPlainSinkEmitFormatsAndSkipsUnknownEvents(t *testing.T) {
	var out bytes.Buffer
	sink := NewPlainSink(&out)

	sink.Emit(Event{
		Type:         EventDetectorFinished,
		At:           time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC),
		Detector:     "tokens",
		Percent:      50,
		FindingCount: 2,
		DurationMS:   17,
		Error:        " deadline exceeded ",
	})
	sink.Emit(Event{Type: EventType("unknown")})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one formatted line, got %d: %q", len(lines), out.String())
	}

	const want = "[03:04:05] detector tokens finished findings=2 duration=17ms (50%) error=deadline exceeded"
	if lines[0] != want {
		t.Fatalf("unexpected detector-finished format:\nwant: %q\n got: %q", want, lines[0])
	}
}
