// Package monitor parses the line protocol the firmware examples print
// over serial and converts raw temperature readings to degrees.
package monitor

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies one parsed line.
type Kind int

const (
	KindUnknown Kind = iota
	KindRaw          // "Raw: N"
	KindTemp         // "Temp: N C"
	KindCal30        // "C30: N" factory calibration at 30 C
	KindCal110       // "C110: N" factory calibration at 110 C
	KindError        // "error: op"
)

// Event is one parsed line from the board.
type Event struct {
	Kind  Kind
	Value int

	// Op carries the failing operation name for KindError lines.
	Op string
}

// Monitor accumulates calibration words as they arrive so later raw
// readings can be converted. Zero value is ready to use.
type Monitor struct {
	c30, c110 int
	haveC30   bool
	haveC110  bool
}

// Parse classifies a single line. Lines that match no known prefix
// return ok=false.
func (m *Monitor) Parse(line string) (Event, bool) {
	line = strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(line, "Raw: "):
		return m.intEvent(KindRaw, line[len("Raw: "):])
	case strings.HasPrefix(line, "Temp: "):
		v := strings.TrimSuffix(line[len("Temp: "):], " C")
		return m.intEvent(KindTemp, v)
	case strings.HasPrefix(line, "C30: "):
		ev, ok := m.intEvent(KindCal30, line[len("C30: "):])
		if ok {
			m.c30 = ev.Value
			m.haveC30 = true
		}
		return ev, ok
	case strings.HasPrefix(line, "C110: "):
		ev, ok := m.intEvent(KindCal110, line[len("C110: "):])
		if ok {
			m.c110 = ev.Value
			m.haveC110 = true
		}
		return ev, ok
	case strings.HasPrefix(line, "error: "):
		return Event{Kind: KindError, Op: line[len("error: "):]}, true
	}
	return Event{}, false
}

// Calibrated reports whether both factory calibration words have been seen.
func (m *Monitor) Calibrated() bool {
	return m.haveC30 && m.haveC110 && m.c110 != m.c30
}

// Convert interpolates a raw ADC reading between the calibration points.
func (m *Monitor) Convert(raw int) (float64, error) {
	if !m.Calibrated() {
		return 0, fmt.Errorf("calibration words not seen yet")
	}
	return float64(raw-m.c30)*(110.0-30.0)/float64(m.c110-m.c30) + 30.0, nil
}

// Stats accumulates converted readings for end-of-run reporting.
// Zero value is ready to use.
type Stats struct {
	count    int
	min, max float64
	sum      float64
}

func (s *Stats) Add(v float64) {
	if s.count == 0 || v < s.min {
		s.min = v
	}
	if s.count == 0 || v > s.max {
		s.max = v
	}
	s.count++
	s.sum += v
}

func (s *Stats) Count() int   { return s.count }
func (s *Stats) Min() float64 { return s.min }
func (s *Stats) Max() float64 { return s.max }

func (s *Stats) Mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / float64(s.count)
}

// Raw payload values arrive bare; the mV field of the ads1115 example is
// ignored past the first token.
func (m *Monitor) intEvent(kind Kind, payload string) (Event, bool) {
	if i := strings.IndexByte(payload, ' '); i >= 0 {
		payload = payload[:i]
	}
	v, err := strconv.Atoi(payload)
	if err != nil {
		return Event{}, false
	}
	return Event{Kind: kind, Value: v}, true
}
