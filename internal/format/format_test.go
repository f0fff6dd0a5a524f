package format

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestProgressWithETA(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	p := newProgressWithETA(clock.now)

	if eta := p.GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}

	clock.advance(time.Second)
	progress, eta := p.Update(0.1)
	if progress != 0.1 {
		t.Errorf("progress = %f, want 0.1", progress)
	}
	// 10% per second leaves 9 seconds.
	if eta < 8*time.Second || eta > 10*time.Second {
		t.Errorf("ETA = %v, want about 9s", eta)
	}

	clock.advance(time.Second)
	_, eta = p.Update(0.2)
	if eta < 7*time.Second || eta > 9*time.Second {
		t.Errorf("ETA = %v, want about 8s", eta)
	}
	if p.Elapsed() != 2*time.Second {
		t.Errorf("Elapsed = %v, want 2s", p.Elapsed())
	}

	_, eta = p.Update(1)
	if eta != 0 {
		t.Errorf("ETA at completion = %v, want 0", eta)
	}
}

func TestProgressWithETA_Clamps(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"above one", 1.5, 1},
		{"negative", -0.5, 0},
		{"inside", 0.25, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProgressWithETA()
			if got, _ := p.Update(tt.in); got != tt.want {
				t.Errorf("Update(%f) = %f, want %f", tt.in, got, tt.want)
			}
			if p.Progress() != tt.want {
				t.Errorf("Progress() = %f, want %f", p.Progress(), tt.want)
			}
		})
	}
}

// TestETACapping verifies that ETA is capped at reasonable values.
func TestETACapping(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newProgressWithETA(clock.now)
	clock.advance(time.Hour)
	_, eta := p.Update(0.0001)

	if eta != MaxETA {
		t.Errorf("ETA = %v, should be capped at %v", eta, MaxETA)
	}
}

// TestFormatETA verifies ETA formatting.
func TestFormatETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		eta      time.Duration
		expected string
	}{
		{"Zero duration", 0, "calculating..."},
		{"Negative duration", -time.Second, "calculating..."},
		{"Less than a second", 500 * time.Millisecond, "< 1s"},
		{"One second", time.Second, "1s"},
		{"Multiple seconds", 45 * time.Second, "45s"},
		{"One minute", time.Minute, "1m"},
		{"Minutes and seconds", 2*time.Minute + 30*time.Second, "2m30s"},
		{"One hour", time.Hour, "1h"},
		{"Hours and minutes", time.Hour + 15*time.Minute, "1h15m"},
		{"Multiple hours", 3*time.Hour + 45*time.Minute, "3h45m"},
		{"Hours only (no minutes)", 2 * time.Hour, "2h"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := FormatETA(tc.eta)
			if result != tc.expected {
				t.Errorf("FormatETA(%v) = %q, want %q", tc.eta, result, tc.expected)
			}
		})
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		progress float64
		eta      time.Duration
		width    int
		contains []string
	}{
		{"Zero progress", 0, time.Minute, 10, []string{"[░░░░░░░░░░]", "0.0%", "ETA: 1m"}},
		{"Half way", 0.5, 30 * time.Second, 4, []string{"[██░░]", "50.0%", "ETA: 30s"}},
		{"Complete", 1.0, 0, 2, []string{"[██]", "100.0%", "ETA: calculating..."}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := FormatProgressBarWithETA(tc.progress, tc.eta, tc.width)
			for _, want := range tc.contains {
				if !strings.Contains(result, want) {
					t.Errorf("FormatProgressBarWithETA() = %q, should contain %q", result, want)
				}
			}
		})
	}
}

// TestProgressBar verifies progress bar rendering.
func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		length   int
		expected string
	}{
		{0.0, 10, "░░░░░░░░░░"},
		{0.5, 10, "█████░░░░░"},
		{1.0, 10, "██████████"},
		{1.2, 10, "██████████"},  // Cap at 1.0
		{-0.1, 10, "░░░░░░░░░░"}, // Floor at 0.0
		{0.5, 0, ""},
	}

	for _, tt := range tests {
		got := ProgressBar(tt.progress, tt.length)
		if got != tt.expected {
			t.Errorf("ProgressBar(%f, %d) = %s; want %s", tt.progress, tt.length, got, tt.expected)
		}
	}
}

// TestFormatExecutionDuration verifies duration formatting.
func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "0µs"},
		{10 * time.Microsecond, "10µs"},
		{10 * time.Millisecond, "10ms"},
		{2 * time.Second, "2s"},
		{2*time.Second + 345678*time.Microsecond, "2.346s"},
	}

	for _, tt := range tests {
		got := FormatExecutionDuration(tt.d)
		if got != tt.expected {
			t.Errorf("FormatExecutionDuration(%v) = %s; want %s", tt.d, got, tt.expected)
		}
	}
}

// TestFormatNumberString verifies thousand separator formatting.
func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"1", "1"},
		{"12", "12"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"-1234", "-1,234"},
		{"-123", "-123"},
	}

	for _, tt := range tests {
		got := FormatNumberString(tt.input)
		if got != tt.expected {
			t.Errorf("FormatNumberString(%q) = %q; want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()
	if got := FormatCount(1_000_000); got != "1,000,000" {
		t.Errorf("FormatCount(1000000) = %q", got)
	}
	if got := FormatCount(uint64(15_485_863)); got != "15,485,863" {
		t.Errorf("FormatCount(15485863) = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
