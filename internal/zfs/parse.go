package zfs

import "strings"

// Triple is one line of `get -H -o name,property,value` output.
type Triple struct {
	Entity   string
	Property string
	Value    string
}

// Record maps property names to values for a single entity. It always
// carries a "name" key equal to the entity's identifier.
type Record map[string]string

// Name returns the entity identifier.
func (r Record) Name() string { return r["name"] }

// RecordSet holds one Record per entity in first-seen order.
type RecordSet []Record

// Names returns the entity identifiers in order.
func (s RecordSet) Names() []string {
	names := make([]string, 0, len(s))
	for _, r := range s {
		names = append(names, r.Name())
	}
	return names
}

// ParseTriples splits tool output into triples. Every non-empty line must
// have exactly three tab-separated fields.
func ParseTriples(out string) ([]Triple, error) {
	var triples []Triple
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if line == "" && i == len(lines)-1 {
			break
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, &MalformedOutputError{LineNo: i + 1, Line: line, Fields: len(fields)}
		}
		triples = append(triples, Triple{Entity: fields[0], Property: fields[1], Value: fields[2]})
	}
	return triples, nil
}

// Fold groups triples by entity. A repeated property overwrites the earlier
// value. The name key is set after folding so it always wins.
func Fold(triples []Triple) RecordSet {
	set := RecordSet{}
	index := make(map[string]int)
	for _, t := range triples {
		i, ok := index[t.Entity]
		if !ok {
			i = len(set)
			index[t.Entity] = i
			set = append(set, Record{})
		}
		set[i][t.Property] = t.Value
	}
	for entity, i := range index {
		set[i]["name"] = entity
	}
	return set
}

// ParseRecords is ParseTriples followed by Fold.
func ParseRecords(out string) (RecordSet, error) {
	triples, err := ParseTriples(out)
	if err != nil {
		return nil, err
	}
	return Fold(triples), nil
}
