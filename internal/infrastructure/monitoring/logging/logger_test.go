package logging

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestToZapFields_TypedConversion(t *testing.T) {
	fields := []Field{
		String("s", "v"),
		Int("i", 7),
		Int64("i64", 9),
		Float64("f", 1.5),
		Bool("b", true),
		Duration("d", time.Second),
		Err(errors.New("boom")),
		Any("a", struct{ X int }{1}),
	}
	got := toZapFields(fields)
	if len(got) != len(fields) {
		t.Fatalf("toZapFields returned %d fields, want %d", len(got), len(fields))
	}
	if got[0].Key != "s" || got[1].Key != "i" {
		t.Errorf("field keys not preserved: %v", got[:2])
	}
	if got[6].Key != "error" {
		t.Errorf("Err field key = %q, want error", got[6].Key)
	}
}

func TestErr_Nil(t *testing.T) {
	f := Err(nil)
	if f.Key != "error" || f.Value != "<nil>" {
		t.Errorf("Err(nil) = %+v", f)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "debug",
		"warn":  "warn",
		"error": "error",
		"":      "info",
		"junk":  "info",
	}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNewLogger_DefaultsAndChildren(t *testing.T) {
	l, err := NewLogger(Config{})
	if err != nil {
		t.Fatalf("NewLogger with empty config: %v", err)
	}
	child := l.With(String("component", "test")).Named("sub")
	child.Info("hello") // must not panic

	if _, ok := child.(*zapLogger); !ok {
		t.Errorf("child logger has unexpected type %T", child)
	}
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Debug("dropped")
	l.Error("dropped", Err(errors.New("x")))
	zl, ok := l.(*zapLogger)
	if !ok {
		t.Fatalf("NewNop returned %T", l)
	}
	if zl.z.Core().Enabled(zap.DebugLevel) {
		t.Error("nop logger should not have debug enabled")
	}
}
