package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampHourBucket(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC))
	if ts.Hour() != 23 {
		t.Errorf("Expected hour 23, got %d", ts.Hour())
	}

	midnight := NewTimestamp(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	if midnight.Hour() != 0 {
		t.Errorf("Expected hour 0, got %d", midnight.Hour())
	}
}

func TestTimestampOrdering(t *testing.T) {
	earlier := NewTimestamp(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	later := NewTimestamp(time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC))

	if !earlier.Before(later) {
		t.Error("Expected earlier.Before(later)")
	}
	if !later.After(earlier) {
		t.Error("Expected later.After(earlier)")
	}
	if earlier.IsZero() {
		t.Error("Non-zero timestamp reported as zero")
	}
	if !(Timestamp{}).IsZero() {
		t.Error("Zero timestamp not reported as zero")
	}
}

func TestTimestampJSONRoundTrip(t *testing.T) {
	original := NewTimestamp(time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC))

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Timestamp
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Time().Equal(original.Time()) {
		t.Errorf("Round trip changed value: %v != %v", decoded, original)
	}
}
