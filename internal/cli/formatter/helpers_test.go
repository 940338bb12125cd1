package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same day", now, "Today"},
		{"next day", now.AddDate(0, 0, 1), "Tomorrow"},
		{"previous day", now.AddDate(0, 0, -1), "Yesterday"},
		{"within two weeks", now.AddDate(0, 0, 5), "In 5d"},
		{"weeks out", now.AddDate(0, 0, 21), "In 3w"},
		{"months out", now.AddDate(0, 0, 90), "In 3mo"},
		{"days ago", now.AddDate(0, 0, -6), "6d ago"},
		{"weeks ago", now.AddDate(0, 0, -21), "3w ago"},
		{"months ago", now.AddDate(0, 0, -90), "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.t, now))
		})
	}
}

func TestDueDateStyle(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, StyleRed, DueDateStyle(now.AddDate(0, 0, -2), now))
	assert.Equal(t, StyleYellow, DueDateStyle(now.AddDate(0, 0, 2), now))
	assert.Equal(t, StyleDim, DueDateStyle(now.AddDate(0, 0, 30), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "long tex…", Truncate("long text here", 9))
	assert.Equal(t, "…", Truncate("anything", 1))
	assert.Equal(t, "", Truncate("anything", 0))
	assert.Equal(t, "héllo wö…", Truncate("héllo wörld long", 9))
}

func TestDateRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-01 → 2026-02-01", DateRange(&start, &end))
	assert.Equal(t, "2026-01-01 →", DateRange(&start, nil))
	assert.Equal(t, "→ 2026-02-01", DateRange(nil, &end))
	assert.Equal(t, "", DateRange(nil, nil))
}
