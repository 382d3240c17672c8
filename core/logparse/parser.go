package logparse

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rank-tracker/core/match"
	"rank-tracker/core/storage"

	"go.uber.org/zap"
)

const maxOffset = math.MaxInt64 / int64(time.Second)

var (
	// StartPattern matches the line that records when the log was opened.
	StartPattern = regexp.MustCompile(`^Log: Log file open, (?P<month>\d+)/(?P<day>\d+)/(?P<year>\d+) (?P<hour>\d+):(?P<minute>\d+):(?P<second>\d+)$`)
	// OutcomePattern matches a rank point update at the end of a match.
	OutcomePattern = regexp.MustCompile(`^\[(?P<time>\d+\.\d+)\] RankPoints: ClientSetSkill Playlist=(?P<playlist>\d+) Mu=(?P<mu>\d+\.\d+) Sigma=(?P<sigma>\d+\.\d+) DeltaRankPoints=(?P<minus>-?)(?P<delta>\d+) RankPoints=(?P<points>\d+)$`)
)

var (
	// ErrMalformedStart is reported when the start line holds an invalid date.
	ErrMalformedStart = errors.New("malformed log start")
	// ErrMissingStart is reported when a result precedes the start line.
	ErrMissingStart = errors.New("log start not determined before match result")
)

// Parser turns log files into match records. It keeps no state between files.
type Parser struct {
	policy   match.Policy
	location *time.Location
	logger   *zap.Logger
}

// New creates a parser. The start line is interpreted in loc, nil means local time.
func New(policy match.Policy, loc *time.Location, logger *zap.Logger) *Parser {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{policy: policy, location: loc, logger: logger}
}

// Parse reads one log. Reaching the end of input is success even when nothing
// matched; the error return is reserved for read failures.
func (p *Parser) Parse(r io.Reader, source string) (*match.Set, error) {
	results := match.NewSet()
	log := p.logger.With(zap.String("file", source))

	var start time.Time
	started, aborted := false, false

	err := storage.ReadLines(r, func(line string) bool {
		if !started {
			if m := StartPattern.FindStringSubmatch(line); m != nil {
				t, err := p.StartTime(m)
				if err != nil {
					log.Error("Error determining log start", zap.Error(err))
					aborted = true
					return false
				}
				start = t
				started = true
			}
		}

		m := OutcomePattern.FindStringSubmatch(line)
		if m == nil {
			return true
		}
		if !started {
			log.Error("Log file not parsed", zap.Error(ErrMissingStart))
			aborted = true
			return false
		}

		record, err := p.outcome(start, m)
		if err != nil {
			log.Warn("Match result not used", zap.String("line", truncate(line)), zap.Error(err))
			return true
		}
		results.Add(record)
		return true
	})
	if err != nil {
		return match.NewSet(), fmt.Errorf("failed to read %s: %w", source, err)
	}
	if aborted {
		return match.NewSet(), nil
	}

	return results, nil
}

// StartTime builds the log start instant from a StartPattern match. The
// two-digit year is taken to be in the 2000s.
func (p *Parser) StartTime(m []string) (time.Time, error) {
	group := func(name string) string { return m[StartPattern.SubexpIndex(name)] }

	var fields [6]int
	for i, name := range []string{"year", "month", "day", "hour", "minute", "second"} {
		value := group(name)
		if name == "year" {
			value = "20" + value
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %s: %w", ErrMalformedStart, name, err)
		}
		fields[i] = n
	}

	year, month, day, hour, minute, second := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
	switch {
	case month < 1 || month > 12:
		return time.Time{}, fmt.Errorf("%w: month %d", ErrMalformedStart, month)
	case day < 1 || day > daysIn(time.Month(month), year):
		return time.Time{}, fmt.Errorf("%w: day %d", ErrMalformedStart, day)
	case hour > 23:
		return time.Time{}, fmt.Errorf("%w: hour %d", ErrMalformedStart, hour)
	case minute > 59:
		return time.Time{}, fmt.Errorf("%w: minute %d", ErrMalformedStart, minute)
	case second > 59:
		return time.Time{}, fmt.Errorf("%w: second %d", ErrMalformedStart, second)
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, p.location), nil
}

func (p *Parser) outcome(start time.Time, m []string) (match.Record, error) {
	group := func(name string) string { return m[OutcomePattern.SubexpIndex(name)] }

	at := match.WallClock(OffsetTime(start, group("time")), p.location)

	delta, err := strconv.Atoi(group("delta"))
	if err != nil {
		return match.Record{}, err
	}
	if group("minus") != "" {
		delta = -delta
	}
	points, err := strconv.Atoi(group("points"))
	if err != nil {
		return match.Record{}, err
	}
	playlist, err := strconv.Atoi(group("playlist"))
	if err != nil {
		return match.Record{}, err
	}

	skill := match.NoSkill
	if mu, err := strconv.ParseFloat(group("mu"), 64); err == nil {
		skill.Mean = mu
	}
	if sigma, err := strconv.ParseFloat(group("sigma"), 64); err == nil {
		skill.Sigma = sigma
	}

	return p.policy.NewRecord(at, match.Category(playlist), delta, points, skill)
}

// OffsetTime adds the whole seconds of a "seconds.milliseconds" offset to
// start. The milliseconds are dropped. An offset that is not a number yields
// the Unix epoch.
func OffsetTime(start time.Time, offset string) time.Time {
	whole, _, _ := strings.Cut(offset, ".")
	seconds, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || seconds < 0 || seconds > maxOffset {
		return time.Unix(0, 0)
	}
	return start.Add(time.Duration(seconds) * time.Second)
}

// truncate shortens a line for logging.
func truncate(line string) string {
	const max = 200
	if len(line) <= max {
		return line
	}
	return line[:max] + "..."
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
