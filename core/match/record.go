package match

import (
	"cmp"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCategory is returned when a record is built for an untracked category.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrMissingTime is returned when a record is built without a timestamp.
	ErrMissingTime = errors.New("missing timestamp")
)

// Absent marks a skill value that was not recorded.
const Absent = -1.0

// Skill is the skill estimate reported for the player in a match.
type Skill struct {
	Mean  float64
	Sigma float64
}

// NoSkill is used when the source does not carry a skill estimate.
var NoSkill = Skill{Mean: Absent, Sigma: Absent}

// Record is the outcome of one match.
type Record struct {
	at         time.Time
	category   Category
	delta      int
	rankBefore int
	skill      Skill
}

// NewRecord validates and builds a Record. Sub-second precision is dropped.
func (p Policy) NewRecord(at time.Time, category Category, delta, rankBefore int, skill Skill) (Record, error) {
	if at.IsZero() {
		return Record{}, ErrMissingTime
	}
	if !p.Valid(category) {
		return Record{}, fmt.Errorf("%w: %d", ErrInvalidCategory, int(category))
	}

	return Record{
		at:         at.Truncate(time.Second),
		category:   category,
		delta:      delta,
		rankBefore: rankBefore,
		skill:      skill,
	}, nil
}

// WithoutSkill returns a copy of r carrying NoSkill.
func (r Record) WithoutSkill() Record {
	r.skill = NoSkill
	return r
}

// WallClock maps t to the instant its wall-clock reading in loc resolves to
// when read back from text. The two differ only for the repeated hour at the
// end of daylight saving time, which resolves to its first occurrence.
func WallClock(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	w := t.In(loc)
	return time.Date(w.Year(), w.Month(), w.Day(), w.Hour(), w.Minute(), w.Second(), w.Nanosecond(), loc)
}

// Time returns when the match concluded.
func (r Record) Time() time.Time { return r.at }

// Category returns the playlist of the match.
func (r Record) Category() Category { return r.category }

// Delta returns the points gained (positive) or lost.
func (r Record) Delta() int { return r.delta }

// RankBefore returns the rank points before the match.
func (r Record) RankBefore() int { return r.rankBefore }

// RankAfter returns the rank points after the match.
func (r Record) RankAfter() int { return r.rankBefore + r.delta }

// Skill returns the skill estimate, NoSkill when not recorded.
func (r Record) Skill() Skill { return r.skill }

// IsWin reports whether points were gained. A win worth zero points is not
// detectable.
func (r Record) IsWin() bool { return r.delta > 0 }

// Compare orders records by time only.
func (r Record) Compare(o Record) int {
	return r.at.Compare(o.at)
}

// Equal reports whether every field of r and o matches.
func (r Record) Equal(o Record) bool {
	return r.order(o) == 0
}

// order is the total order used by Set: time first, then content.
func (r Record) order(o Record) int {
	if c := r.at.Compare(o.at); c != 0 {
		return c
	}
	if c := cmp.Compare(r.category, o.category); c != 0 {
		return c
	}
	if c := cmp.Compare(r.delta, o.delta); c != 0 {
		return c
	}
	if c := cmp.Compare(r.rankBefore, o.rankBefore); c != 0 {
		return c
	}
	if c := cmp.Compare(r.skill.Mean, o.skill.Mean); c != 0 {
		return c
	}
	return cmp.Compare(r.skill.Sigma, o.skill.Sigma)
}

func (r Record) String() string {
	return fmt.Sprintf("%s,%s,%v,%v,%d,%d",
		r.at.Format(time.DateTime),
		r.category.Name(),
		r.skill.Mean,
		r.skill.Sigma,
		r.delta,
		r.rankBefore)
}
