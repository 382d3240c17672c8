package match

import "slices"

// Set is an ordered collection of unique records.
type Set struct {
	records []Record
}

// NewSet returns a set holding the given records.
func NewSet(records ...Record) *Set {
	s := &Set{}
	for _, r := range records {
		s.Add(r)
	}
	return s
}

// Add inserts r and reports whether it was not already present.
func (s *Set) Add(r Record) bool {
	i, found := slices.BinarySearchFunc(s.records, r, Record.order)
	if found {
		return false
	}
	s.records = slices.Insert(s.records, i, r)
	return true
}

// AddAll inserts every record of o and returns how many were new.
func (s *Set) AddAll(o *Set) int {
	if o == nil {
		return 0
	}
	added := 0
	for _, r := range o.records {
		if s.Add(r) {
			added++
		}
	}
	return added
}

// Contains reports whether an equal record is present.
func (s *Set) Contains(r Record) bool {
	_, found := slices.BinarySearchFunc(s.records, r, Record.order)
	return found
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.records)
}

// Records returns the records in order. The slice is a copy.
func (s *Set) Records() []Record {
	return slices.Clone(s.records)
}

// First returns the earliest record.
func (s *Set) First() (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[0], true
}

// Last returns the latest record.
func (s *Set) Last() (Record, bool) {
	if len(s.records) == 0 {
		return Record{}, false
	}
	return s.records[len(s.records)-1], true
}
