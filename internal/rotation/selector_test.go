package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func Test_Select(t *testing.T) {
	type args struct {
		feed Feed
		now  time.Time
	}
	tests := []struct {
		name    string
		args    args
		want    Entry
		wantErr error
	}{
		{
			name: "Should return first entry when its window is still open",
			args: args{
				feed: Feed{
					{StartTime: ts(0), EndTime: ts(100), StageID: "a"},
					{StartTime: ts(100), EndTime: ts(200), StageID: "b"},
				},
				now: ts(50),
			},
			want: Entry{StartTime: ts(0), EndTime: ts(100), StageID: "a"},
		},
		{
			name: "Should skip expired entries",
			args: args{
				feed: Feed{
					{StartTime: ts(0), EndTime: ts(100), StageID: "a"},
					{StartTime: ts(100), EndTime: ts(200), StageID: "b"},
				},
				now: ts(150),
			},
			want: Entry{StartTime: ts(100), EndTime: ts(200), StageID: "b"},
		},
		{
			name: "Should break overlapping windows by feed order",
			args: args{
				feed: Feed{
					{StartTime: ts(0), EndTime: ts(100), StageID: "a"},
					{StartTime: ts(50), EndTime: ts(200), StageID: "b"},
				},
				now: ts(60),
			},
			want: Entry{StartTime: ts(0), EndTime: ts(100), StageID: "a"},
		},
		{
			name: "Should treat an entry ending exactly now as expired",
			args: args{
				feed: Feed{
					{StartTime: ts(0), EndTime: ts(100), StageID: "a"},
					{StartTime: ts(100), EndTime: ts(200), StageID: "b"},
				},
				now: ts(100),
			},
			want: Entry{StartTime: ts(100), EndTime: ts(200), StageID: "b"},
		},
		{
			name:    "Should fail on empty feed",
			args:    args{feed: Feed{}, now: ts(0)},
			wantErr: ErrNoActiveEntry,
		},
		{
			name: "Should fail when every window has closed",
			args: args{
				feed: Feed{
					{StartTime: ts(0), EndTime: ts(100)},
					{StartTime: ts(100), EndTime: ts(200)},
				},
				now: ts(300),
			},
			wantErr: ErrNoActiveEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.args.feed, tt.args.now)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_Entry_SleepUntilEnd(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry Entry
		want  time.Duration
	}{
		{
			name:  "Should return exact remaining duration",
			entry: Entry{EndTime: now.Add(30 * time.Minute)},
			want:  30 * time.Minute,
		},
		{
			name:  "Should clamp to zero for a window already closed",
			entry: Entry{EndTime: now.Add(-time.Hour)},
			want:  0,
		},
		{
			name:  "Should return zero for a window ending exactly now",
			entry: Entry{EndTime: now},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.SleepUntilEnd(now))
		})
	}
}
