package request_test

import (
	"testing"
	"time"

	"github.com/CosmosChiang/LifeSwap/internal/request"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestRequest_Hours(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		start *time.Time
		end   *time.Time
		want  float64
	}{
		{
			name:  "regular span",
			start: timePtr(day.Add(18 * time.Hour)),
			end:   timePtr(day.Add(20*time.Hour + 30*time.Minute)),
			want:  2.5,
		},
		{
			name:  "missing start",
			start: nil,
			end:   timePtr(day.Add(20 * time.Hour)),
			want:  0,
		},
		{
			name:  "missing end",
			start: timePtr(day.Add(18 * time.Hour)),
			end:   nil,
			want:  0,
		},
		{
			name:  "end equals start",
			start: timePtr(day.Add(18 * time.Hour)),
			end:   timePtr(day.Add(18 * time.Hour)),
			want:  0,
		},
		{
			name:  "end before start",
			start: timePtr(day.Add(22 * time.Hour)),
			end:   timePtr(day.Add(1 * time.Hour)),
			want:  0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := request.Request{StartTime: tc.start, EndTime: tc.end}
			assert.InDelta(t, tc.want, req.Hours(), 0.0001)
		})
	}
}
