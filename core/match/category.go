package match

import "strconv"

// Category identifies the playlist a match was played in.
type Category int

const (
	// UnknownCategory is returned by ParseCategory for unrecognized names.
	UnknownCategory Category = -1
	// Unranked is shared across all unranked modes.
	Unranked Category = 0
	// Ranked1v1 is the ranked duel playlist.
	Ranked1v1 Category = 10
	// Ranked2v2 is the ranked doubles playlist.
	Ranked2v2 Category = 11
	// SoloRanked3v3 is the solo queue standard playlist.
	SoloRanked3v3 Category = 12
	// Ranked3v3 is the ranked standard playlist.
	Ranked3v3 Category = 13
)

var categoryNames = map[Category]string{
	Ranked1v1:     "1v1",
	Ranked2v2:     "2v2",
	SoloRanked3v3: "solo-3v3",
	Ranked3v3:     "3v3",
	Unranked:      "unranked",
}

var categoryAliases = map[string]Category{
	"Ranked 1v1":      Ranked1v1,
	"Ranked 2v2":      Ranked2v2,
	"Solo Ranked 3v3": SoloRanked3v3,
	"Ranked 3v3":      Ranked3v3,
}

// Name returns the short name used in exported rows and file names.
// Unrecognized categories are rendered as their number.
func (c Category) Name() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

func (c Category) String() string {
	return c.Name()
}

// IsRanked reports whether c is one of the four ranked playlists.
func (c Category) IsRanked() bool {
	return c >= Ranked1v1 && c <= Ranked3v3
}

// ParseCategory is the reverse of Name. It also accepts the verbose playlist
// names and plain playlist numbers.
func ParseCategory(name string) Category {
	for c, n := range categoryNames {
		if n == name {
			return c
		}
	}
	if c, ok := categoryAliases[name]; ok {
		return c
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return UnknownCategory
	}
	return Category(n)
}

// Policy decides which categories are tracked. The four ranked playlists
// always are. Unranked matches share one category across all modes and are
// tracked only with IncludeUnranked.
type Policy struct {
	IncludeUnranked bool
}

// Valid reports whether c is tracked under this policy.
func (p Policy) Valid(c Category) bool {
	if c.IsRanked() {
		return true
	}
	return p.IncludeUnranked && c == Unranked
}

// Categories lists the tracked categories in ascending order.
func (p Policy) Categories() []Category {
	cats := make([]Category, 0, 5)
	if p.IncludeUnranked {
		cats = append(cats, Unranked)
	}
	return append(cats, Ranked1v1, Ranked2v2, SoloRanked3v3, Ranked3v3)
}
