package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/timeline"
)

func TestOnlineStatus(t *testing.T) {
	const id = "6a1f2c"

	tests := []struct {
		name     string
		snaps    []domain.Snapshot
		expected []string
	}{
		{
			name: "first join",
			snaps: []domain.Snapshot{
				snap(t0, nil, nil),
				snap(t1, residents(id, domain.ResidentRecord{Name: "Alice", LastOnline: millis(1000000)}), nil),
			},
			expected: []string{
				"🚪 User has joined the server for the first time and was last online at <t:1000>. (data from <t:1700003600>)",
			},
		},
		{
			name: "unchanged last online",
			snaps: []domain.Snapshot{
				snap(t0, residents(id, domain.ResidentRecord{LastOnline: millis(5000)}), nil),
				snap(t1, residents(id, domain.ResidentRecord{LastOnline: millis(5000)}), nil),
			},
			expected: []string{"🟡 User was NOT online. (data from <t:1700003600>)"},
		},
		{
			name: "never recorded",
			snaps: []domain.Snapshot{
				snap(t0, residents(id, domain.ResidentRecord{Name: "Alice"}), nil),
				snap(t1, nil, nil),
			},
			expected: []string{"🚫 User has not yet joined the server. (data from <t:1700003600>)"},
		},
		{
			name: "online between snapshots",
			snaps: []domain.Snapshot{
				snap(t0, residents(id, domain.ResidentRecord{LastOnline: millis(1699999000000)}), nil),
				snap(t1, residents(id, domain.ResidentRecord{LastOnline: millis(1700001234567)}), nil),
			},
			expected: []string{"🟢 User was online at <t:1700001234>. (data from <t:1700003600>)"},
		},
		{
			name: "last online lost",
			snaps: []domain.Snapshot{
				snap(t0, residents(id, domain.ResidentRecord{LastOnline: millis(5000)}), nil),
				snap(t1, residents(id, domain.ResidentRecord{}), nil),
			},
			expected: []string{"🟡 User was NOT online. (data from <t:1700003600>)"},
		},
		{
			name: "live snapshot",
			snaps: []domain.Snapshot{
				snap(t0, residents(id, domain.ResidentRecord{LastOnline: millis(5000)}), nil),
				live(residents(id, domain.ResidentRecord{LastOnline: millis(9000)}), nil),
			},
			expected: []string{"🟢 User was online at <t:9>. (data from now)"},
		},
		{
			name:     "single snapshot",
			snaps:    []domain.Snapshot{snap(t0, residents(id, domain.ResidentRecord{LastOnline: millis(5000)}), nil)},
			expected: []string{},
		},
		{
			name:     "no snapshots",
			snaps:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timeline.OnlineStatus(tt.snaps, id))
		})
	}
}

func TestOnlineStatus_OrderPreserved(t *testing.T) {
	const id = "6a1f2c"
	snaps := []domain.Snapshot{
		snap(t0, nil, nil),
		snap(t1, residents(id, domain.ResidentRecord{LastOnline: millis(2000)}), nil),
		snap(t2, residents(id, domain.ResidentRecord{LastOnline: millis(2000)}), nil),
	}

	got := timeline.OnlineStatus(snaps, id)

	assert.Len(t, got, len(snaps)-1)
	assert.Equal(t, "🚪 User has joined the server for the first time and was last online at <t:2>. (data from <t:1700003600>)", got[0])
	assert.Equal(t, "🟡 User was NOT online. (data from <t:1700007200>)", got[1])
}

func TestMillisToSeconds(t *testing.T) {
	assert.Equal(t, int64(1000), timeline.MillisToSeconds(1000000))
	assert.Equal(t, int64(1), timeline.MillisToSeconds(1999))
	assert.Equal(t, int64(0), timeline.MillisToSeconds(0))
	assert.Equal(t, int64(-2), timeline.MillisToSeconds(-1500))
}
