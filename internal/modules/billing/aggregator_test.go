package billing

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func TestAggregator_ContinuityWindow(t *testing.T) {
	if got := NewAggregator(1200).ContinuityWindow(); got != 3*time.Second {
		t.Errorf("window at 1200x = %v, want 3s", got)
	}
	if got := NewAggregator(1).ContinuityWindow(); got != time.Hour {
		t.Errorf("window at 1x = %v, want 1h", got)
	}
}

func TestAggregator_BillableHours(t *testing.T) {
	agg := NewAggregator(1200) // one park-hour every 3 real seconds

	tests := []struct {
		name  string
		entry time.Time
		exit  time.Time
		prior *Span
		want  float64
	}{
		{
			name:  "no prior session",
			entry: t0,
			exit:  t0.Add(6 * time.Second),
			want:  2.0,
		},
		{
			name:  "prior merged when gap inside window",
			entry: t0,
			exit:  t0.Add(3 * time.Second),
			prior: &Span{Entry: t0.Add(-5 * time.Second), Exit: t0.Add(-2 * time.Second)},
			want:  2.0,
		},
		{
			name:  "gap exactly at window still merges",
			entry: t0,
			exit:  t0.Add(3 * time.Second),
			prior: &Span{Entry: t0.Add(-6 * time.Second), Exit: t0.Add(-3 * time.Second)},
			want:  2.0,
		},
		{
			name:  "gap past window ignores prior",
			entry: t0,
			exit:  t0.Add(3 * time.Second),
			prior: &Span{Entry: t0.Add(-10 * time.Second), Exit: t0.Add(-4 * time.Second)},
			want:  1.0,
		},
		{
			name:  "zero elapsed",
			entry: t0,
			exit:  t0,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.BillableHours(tt.entry, tt.exit, tt.prior)
			if got != tt.want {
				t.Errorf("BillableHours = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCeilHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  int64
	}{
		{0, 0},
		{0.001, 1}, // a near-zero stay still bills one hour
		{1, 1},
		{1.5, 2},
		{23.999, 24},
	}
	for _, tt := range tests {
		if got := CeilHours(tt.hours); got != tt.want {
			t.Errorf("CeilHours(%v) = %d, want %d", tt.hours, got, tt.want)
		}
	}
}
