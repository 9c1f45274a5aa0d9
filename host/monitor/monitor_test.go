package monitor

import (
	"math"
	"testing"
)

func TestParseKinds(t *testing.T) {
	var m Monitor
	cases := []struct {
		line string
		kind Kind
		val  int
	}{
		{"Raw: 1774", KindRaw, 1774},
		{"Temp: 31 C", KindTemp, 31},
		{"C30: 1750", KindCal30, 1750},
		{"C110: 1300", KindCal110, 1300},
		{"Raw: 512  mV: 1024", KindRaw, 512},
		{"  Raw: 7\r", KindRaw, 7},
	}
	for _, c := range cases {
		ev, ok := m.Parse(c.line)
		if !ok {
			t.Fatalf("Parse(%q) not recognized", c.line)
		}
		if ev.Kind != c.kind || ev.Value != c.val {
			t.Errorf("Parse(%q) = %v/%d, want %v/%d", c.line, ev.Kind, ev.Value, c.kind, c.val)
		}
	}
}

func TestParseError(t *testing.T) {
	var m Monitor
	ev, ok := m.Parse("error: adc read")
	if !ok || ev.Kind != KindError || ev.Op != "adc read" {
		t.Fatalf("Parse error line = %+v ok=%v", ev, ok)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	var m Monitor
	for _, line := range []string{"", "hello", "Raw: xyz", "Temp:"} {
		if _, ok := m.Parse(line); ok {
			t.Errorf("Parse(%q) unexpectedly recognized", line)
		}
	}
}

func TestConvertNeedsCalibration(t *testing.T) {
	var m Monitor
	if _, err := m.Convert(1500); err == nil {
		t.Fatal("Convert before calibration lines should fail")
	}
	m.Parse("C30: 1750")
	if m.Calibrated() {
		t.Fatal("one calibration word must not be enough")
	}
	m.Parse("C110: 1300")
	if !m.Calibrated() {
		t.Fatal("both calibration words seen, still not calibrated")
	}

	// Raw equal to a calibration point lands exactly on its temperature.
	got, err := m.Convert(1750)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-30.0) > 1e-9 {
		t.Errorf("Convert(c30) = %v, want 30", got)
	}
	got, _ = m.Convert(1300)
	if math.Abs(got-110.0) > 1e-9 {
		t.Errorf("Convert(c110) = %v, want 110", got)
	}

	// Midpoint lands midway.
	got, _ = m.Convert(1525)
	if math.Abs(got-70.0) > 1e-9 {
		t.Errorf("Convert(midpoint) = %v, want 70", got)
	}
}

func TestStats(t *testing.T) {
	var s Stats
	if s.Count() != 0 || s.Mean() != 0 {
		t.Fatal("zero value not empty")
	}
	for _, v := range []float64{30, 40, 50} {
		s.Add(v)
	}
	if s.Count() != 3 || s.Min() != 30 || s.Max() != 50 {
		t.Fatalf("stats = n%d min%v max%v", s.Count(), s.Min(), s.Max())
	}
	if math.Abs(s.Mean()-40.0) > 1e-9 {
		t.Errorf("Mean() = %v, want 40", s.Mean())
	}

	// Negative readings move the minimum.
	s.Add(-10)
	if s.Min() != -10 {
		t.Errorf("Min() = %v, want -10", s.Min())
	}
}

func TestDegenerateCalibration(t *testing.T) {
	var m Monitor
	m.Parse("C30: 1500")
	m.Parse("C110: 1500")
	if m.Calibrated() {
		t.Fatal("equal calibration words must not report calibrated")
	}
}
