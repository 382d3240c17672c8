package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"rank-tracker/core/match"
	"rank-tracker/core/storage"

	"go.uber.org/zap"
)

// Schema selects the columns written by Encode.
type Schema int

const (
	// Legacy writes Date,Time,PlayList,DeltaPoints,RankPoints.
	Legacy Schema = iota
	// Extended appends Mu,Sigma to the legacy columns.
	Extended
)

// ErrUnknownSchema is returned by ParseSchema for unrecognized names.
var ErrUnknownSchema = errors.New("unknown schema")

const (
	// LegacyHeader is the first line of a legacy snapshot.
	LegacyHeader = "Date,Time,PlayList,DeltaPoints,RankPoints"
	// ExtendedHeader is the first line of an extended snapshot.
	ExtendedHeader = LegacyHeader + ",Mu,Sigma"

	maxLoggedRow = 200

	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

var (
	legacyRow   = regexp.MustCompile(`^(?P<date>[^,]+),(?P<time>[^,]+),(?P<playlist>[^,]+),(?P<delta>[^,]+),(?P<points>[^,]+)$`)
	extendedRow = regexp.MustCompile(`^(?P<date>[^,]+),(?P<time>[^,]+),(?P<playlist>[^,]+),(?P<delta>[^,]+),(?P<points>[^,]+),(?P<mu>[^,]*),(?P<sigma>[^,]*)$`)
)

// ParseSchema maps a configuration value onto a Schema.
func ParseSchema(name string) (Schema, error) {
	switch strings.ToLower(name) {
	case "legacy":
		return Legacy, nil
	case "extended", "":
		return Extended, nil
	default:
		return Legacy, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
}

func (s Schema) String() string {
	if s == Legacy {
		return "legacy"
	}
	return "extended"
}

// Header returns the header line for the schema.
func (s Schema) Header() string {
	if s == Legacy {
		return LegacyHeader
	}
	return ExtendedHeader
}

// Codec converts between record sets and snapshot text.
type Codec struct {
	policy   match.Policy
	location *time.Location
	logger   *zap.Logger
}

// New creates a codec. Dates are written and read in loc, nil means local time.
func New(policy match.Policy, loc *time.Location, logger *zap.Logger) *Codec {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{policy: policy, location: loc, logger: logger}
}

// Encode writes the header and one row per record in set order.
func (c *Codec) Encode(w io.Writer, records *match.Set, schema Schema) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(schema.Header() + "\n"); err != nil {
		return err
	}

	for _, r := range records.Records() {
		at := r.Time().In(c.location)
		row := fmt.Sprintf("%s,%s,%s,%d,%d",
			at.Format(dateLayout),
			at.Format(timeLayout),
			r.Category().Name(),
			r.Delta(),
			r.RankBefore())
		if schema == Extended {
			row += "," + formatSkill(r.Skill().Mean) + "," + formatSkill(r.Skill().Sigma)
		}
		if _, err := bw.WriteString(row + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Decode reads a snapshot. The source name is only used in diagnostics.
// An unrecognized header yields an empty set and no error; the error return is
// reserved for read failures.
func (c *Codec) Decode(r io.Reader, source string) (*match.Set, error) {
	results := match.NewSet()
	log := c.logger.With(zap.String("file", source))

	header, seen := "", false
	err := storage.ReadLines(r, func(line string) bool {
		if !seen {
			header, seen = line, true
			return header == LegacyHeader || header == ExtendedHeader
		}

		record, err := c.decodeRow(line)
		if err != nil {
			log.Warn("Row not used", zap.String("row", clip(line)), zap.Error(err))
			return true
		}
		results.Add(record)
		return true
	})
	if err != nil {
		return results, fmt.Errorf("failed to read %s: %w", source, err)
	}

	switch {
	case !seen:
		log.Warn("Empty snapshot file, not parsed")
	case header != LegacyHeader && header != ExtendedHeader:
		log.Warn("Invalid header, file not parsed", zap.String("header", clip(header)))
	}

	return results, nil
}

func (c *Codec) decodeRow(line string) (match.Record, error) {
	fields, ok := submatches(legacyRow, line)
	if !ok {
		fields, ok = submatches(extendedRow, line)
	}
	if !ok {
		return match.Record{}, errors.New("invalid format")
	}

	at, err := time.ParseInLocation(dateLayout+"T"+timeLayout, fields["date"]+"T"+fields["time"], c.location)
	if err != nil {
		return match.Record{}, err
	}

	playlist := fields["playlist"]
	if n, err := strconv.Atoi(playlist); err == nil && c.policy.Valid(match.Category(n)) {
		playlist = match.Category(n).Name()
	}

	delta, err := strconv.Atoi(fields["delta"])
	if err != nil {
		return match.Record{}, err
	}
	points, err := strconv.Atoi(fields["points"])
	if err != nil {
		return match.Record{}, err
	}

	skill := match.NoSkill
	if skill.Mean, err = parseSkill(fields["mu"]); err != nil {
		return match.Record{}, err
	}
	if skill.Sigma, err = parseSkill(fields["sigma"]); err != nil {
		return match.Record{}, err
	}

	return c.policy.NewRecord(at, match.ParseCategory(playlist), delta, points, skill)
}

// submatches returns the named groups of re in line. Groups absent from re are
// missing from the map.
func submatches(re *regexp.Regexp, line string) (map[string]string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	fields := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" {
			fields[name] = m[i]
		}
	}
	return fields, true
}

func parseSkill(s string) (float64, error) {
	if s == "" {
		return match.Absent, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatSkill(v float64) string {
	if v == match.Absent {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// clip shortens a row for logging.
func clip(line string) string {
	if len(line) <= maxLoggedRow {
		return line
	}
	return line[:maxLoggedRow] + "..."
}
