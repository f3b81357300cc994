package config

import (
	"testing"
	"time"
)

func TestStringDefault(t *testing.T) {
	t.Setenv("RADAR_TEST_STR", "hello")
	if got := String("RADAR_TEST_STR", "fallback"); got != "hello" {
		t.Errorf("String = %q", got)
	}
	if got := String("RADAR_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("String = %q", got)
	}
}

func TestIntDefault(t *testing.T) {
	t.Setenv("RADAR_TEST_INT", "42")
	t.Setenv("RADAR_TEST_BAD_INT", "forty-two")
	if got := Int("RADAR_TEST_INT", 7); got != 42 {
		t.Errorf("Int = %d", got)
	}
	if got := Int("RADAR_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("Int on garbage = %d", got)
	}
}

func TestFloatDefault(t *testing.T) {
	t.Setenv("RADAR_TEST_FLOAT", "12.5")
	if got := Float("RADAR_TEST_FLOAT", 1); got != 12.5 {
		t.Errorf("Float = %v", got)
	}
	if got := Float("RADAR_TEST_UNSET", 15); got != 15 {
		t.Errorf("Float default = %v", got)
	}
}

func TestBoolDefault(t *testing.T) {
	t.Setenv("RADAR_TEST_BOOL", "false")
	if got := Bool("RADAR_TEST_BOOL", true); got {
		t.Error("Bool should honor an explicit false")
	}
	if got := Bool("RADAR_TEST_UNSET", true); !got {
		t.Error("Bool default lost")
	}
}

func TestDurationDefault(t *testing.T) {
	t.Setenv("RADAR_TEST_DUR", "90s")
	t.Setenv("RADAR_TEST_BAD_DUR", "yesterday")
	if got := Duration("RADAR_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("Duration = %v", got)
	}
	if got := Duration("RADAR_TEST_BAD_DUR", time.Minute); got != time.Minute {
		t.Errorf("Duration on garbage = %v", got)
	}
}
