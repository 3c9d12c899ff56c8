package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: Debug},
		{in: " INFO ", want: Info},
		{in: "", want: Info},
		{in: "warning", want: Warn},
		{in: "error", want: Error},
		{in: "loud", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("JSON"); err != nil || f != JSON {
		t.Fatalf("unexpected %v %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != Text {
		t.Fatalf("unexpected %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Debug, JSON, &buf).With(Field{Key: "subsystem", Value: "sweep"})
	log.Info("point done", Field{Key: "snr_db", Value: 3.0}, Field{Key: "", Value: "dropped"})

	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if payload["msg"] != "point done" || payload["subsystem"] != "sweep" || payload["snr_db"] != 3.0 {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload["level"] != "INFO" {
		t.Fatalf("unexpected level %v", payload["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Warn, Text, &buf)
	log.Info("hidden")
	log.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFromCoreObserver(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromCore(core)
	log.Debug("sample", Field{Key: "ber", Value: 0.5})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["ber"] != 0.5 {
		t.Fatalf("unexpected context %v", entries[0].ContextMap())
	}
}

func TestDefaultIsNeverNil(t *testing.T) {
	if Default() == nil {
		t.Fatal("default logger is nil")
	}
	SetDefault(nil)
	if Default() == nil {
		t.Fatal("SetDefault(nil) cleared the default logger")
	}
}
