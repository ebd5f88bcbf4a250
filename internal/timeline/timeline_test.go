package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-timeline/internal/domain"
	"github.com/feral-file/ff-timeline/internal/timeline"
)

func TestResidentTimeline(t *testing.T) {
	const id = "6a1f2c"
	snaps := []domain.Snapshot{
		snap(t0, nil, nil),
		snap(t1, residents(id, domain.ResidentRecord{
			Name:         "Alice",
			LastOnline:   millis(1700001000000),
			Town:         domain.NamedTown("Ravenholm"),
			TownJoinTime: 1700000500000,
		}), nil),
	}

	got := timeline.ResidentTimeline(snaps, id)

	assert.Equal(t, domain.ResidentTimeline{
		LastOnline: []string{
			"🚪 User has joined the server for the first time and was last online at <t:1700001000>. (data from <t:1700003600>)",
		},
		LastTown: []string{
			"🚫 User has not yet joined the server. (data from <t:1700000000>)",
			"🏠 User joined town `Ravenholm` at <t:1700000500>. (data from <t:1700003600>)",
		},
	}, got)
}

func TestTownTimeline(t *testing.T) {
	f := newRosterFixture()

	got, err := timeline.TownTimeline([]domain.Snapshot{snap(t0, f.people, f.town(f.carol))}, "Ravenholm")
	require.NoError(t, err)
	assert.Equal(t, domain.TownTimeline{
		CompareOfficers: []string{"👮 `Carol` was an Officer. (data from <t:1700000000>)"},
	}, got)

	_, err = timeline.TownTimeline([]domain.Snapshot{snap(t0, nil, f.town(f.carol))}, "Ravenholm")
	assert.ErrorIs(t, err, domain.ErrUnknownOfficer)
}

func TestEmptySequence(t *testing.T) {
	assert.Empty(t, timeline.OnlineStatus(nil, "6a1f2c"))
	assert.Empty(t, timeline.TownMembership(nil, "6a1f2c"))

	lines, err := timeline.OfficerRoster(nil, "Ravenholm")
	require.NoError(t, err)
	assert.Empty(t, lines)

	assert.Equal(t, timeline.Universe{}, timeline.EntityUniverse(nil))
}

func TestEntityUniverse(t *testing.T) {
	f := newRosterFixture()
	snaps := []domain.Snapshot{
		snap(t0, residents("gone", domain.ResidentRecord{Name: "Gone"}), map[string]domain.TownRecord{"Atlantis": {}}),
		snap(t1, f.people, map[string]domain.TownRecord{"Ravenholm": {}, "Kingsport": {}}),
	}

	got := timeline.EntityUniverse(snaps)

	expectedIDs := []string{f.alice, f.bob, f.carol}
	assert.ElementsMatch(t, expectedIDs, got.ResidentIDs)
	assert.IsIncreasing(t, got.ResidentIDs)
	assert.Equal(t, []string{"Kingsport", "Ravenholm"}, got.TownNames)
}

func TestTimelineDeterminism(t *testing.T) {
	f := newRosterFixture()
	snaps := []domain.Snapshot{
		snap(t0, f.people, f.town(f.alice, f.bob, f.carol)),
		snap(t1, f.people, f.town(f.carol)),
		snap(t2, f.people, f.town(f.bob, f.alice)),
	}

	first, err := timeline.TownTimeline(snaps, "Ravenholm")
	require.NoError(t, err)

	for range 20 {
		again, err := timeline.TownTimeline(snaps, "Ravenholm")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{
		"👮 `Alice` was an Officer. (data from <t:1700000000>)",
		"👮 `Bob` was an Officer. (data from <t:1700000000>)",
		"👮 `Carol` was an Officer. (data from <t:1700000000>)",
		"📅 Changes (data from <t:1700003600>):",
		"🔴 `Alice` is no longer an Officer.",
		"🔴 `Bob` is no longer an Officer.",
		"📅 Changes (data from <t:1700007200>):",
		"🔴 `Carol` is no longer an Officer.",
		"🟢 `Bob` became an Officer.",
		"🟢 `Alice` became an Officer.",
	}, first.CompareOfficers)
}
