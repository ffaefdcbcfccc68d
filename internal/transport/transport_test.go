package transport

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nadzzz/squeezeyard/internal/message"
)

func TestStamp(t *testing.T) {
	tests := []struct {
		name       string
		req        message.Request
		wantID     string
		wantSource string
	}{
		{"fills blanks", message.Request{Text: "louder"}, "", "http"},
		{"keeps caller id and source", message.Request{ID: "abc", Source: "kitchen-tablet"}, "abc", "kitchen-tablet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			before := time.Now()
			Stamp(&req, "http")

			if tt.wantID != "" && req.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", req.ID, tt.wantID)
			}
			if tt.wantID == "" {
				if _, err := uuid.Parse(req.ID); err != nil {
					t.Errorf("ID %q is not a uuid: %v", req.ID, err)
				}
			}
			if req.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", req.Source, tt.wantSource)
			}
			if req.Timestamp.Before(before.Add(-time.Second)) || req.Timestamp.Location() != time.UTC {
				t.Errorf("Timestamp = %v, want a fresh UTC time", req.Timestamp)
			}
		})
	}
}
