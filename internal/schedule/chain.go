package schedule

import (
	"github.com/alexanderramin/rota/internal/domain"
	"github.com/alexanderramin/rota/internal/timeutil"
)

// Rechain recomputes every session's cached start/end time by walking each
// day's sessions in master-list order and chaining durations from the day's
// anchor. Sessions are contiguous within a day by construction: no gaps, no
// overlaps. The input slice is not modified.
//
// A non-positive duration is floored to domain.MinSessionMin so a bad edit
// cannot collapse the chain. Sessions whose DayID has no DayConfig keep their
// cached times untouched.
func Rechain(days []domain.DayConfig, sessions []domain.Session) []domain.Session {
	out := make([]domain.Session, len(sessions))
	copy(out, sessions)

	for _, day := range days {
		t := day.StartTime
		for i := range out {
			if out[i].DayID != day.ID {
				continue
			}
			dur := out[i].DurationMin
			if dur < domain.MinSessionMin {
				dur = domain.MinSessionMin
			}
			out[i].StartMin = t
			out[i].EndMin = t + timeutil.Minutes(dur)
			t = out[i].EndMin
		}
	}
	return out
}
