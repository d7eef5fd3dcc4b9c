package wad

import (
	"strings"

	"go.uber.org/zap"
)

const (
	startSuffix = "_START"
	endSuffix   = "_END"
)

// NamedGroup is a run of directory entries between *_START and *_END markers
// sharing a prefix, e.g. the flats between F_START and F_END. Payloads stay
// undecoded; flats and sprite patches are raw pixel data.
type NamedGroup struct {
	Prefix  string
	Entries []DirEntry
}

// MapUnit associates a map marker entry with the role lumps that follow it
// in the directory. Optional roles that the WAD omits are simply absent.
type MapUnit struct {
	Marker string
	Lumps  map[string]DirEntry // keyed by canonical role name
}

// Entry returns the directory entry filling a role, if present.
func (m MapUnit) Entry(role string) (DirEntry, bool) {
	e, ok := m.Lumps[role]
	return e, ok
}

// MarkerGroups scans the directory for *_START/*_END pairs and collects the
// entries between each pair. Groups nest (P_START holds P1_START..P1_END in
// the stock IWADs); a non-marker entry belongs to every group open at that
// point. An unterminated group is reported as a warning and keeps whatever
// it collected; scanning continues past it either way. Groups are returned
// in closing order, innermost first.
func (a *Archive) MarkerGroups() ([]NamedGroup, []error) {
	var groups []NamedGroup
	var warnings []error
	var open []NamedGroup // stack, innermost last

	closeTop := func() {
		groups = append(groups, open[len(open)-1])
		open = open[:len(open)-1]
	}

	for _, e := range a.Entries {
		switch {
		case strings.HasSuffix(e.Name, startSuffix):
			open = append(open, NamedGroup{Prefix: strings.TrimSuffix(e.Name, startSuffix)})
		case strings.HasSuffix(e.Name, endSuffix):
			prefix := strings.TrimSuffix(e.Name, endSuffix)
			match := -1
			for i := len(open) - 1; i >= 0; i-- {
				if open[i].Prefix == prefix {
					match = i
					break
				}
			}
			if match < 0 {
				a.logger.Warn("end marker without matching start", zap.String("name", e.Name))
				continue
			}
			// Close anything left open inside the matched pair first.
			for len(open) > match+1 {
				warnings = append(warnings, &UnterminatedGroupError{Name: open[len(open)-1].Prefix})
				closeTop()
			}
			closeTop()
		default:
			for i := range open {
				open[i].Entries = append(open[i].Entries, e)
			}
		}
	}
	for len(open) > 0 {
		warnings = append(warnings, &UnterminatedGroupError{Name: open[len(open)-1].Prefix})
		closeTop()
	}
	return groups, warnings
}

// Maps groups map marker entries with the run of role lumps that follows
// each one. A marker is any entry immediately followed by at least one of
// the ten canonical role names; the run is consumed greedily and stops at
// the first name that is not a role. Missing required roles are warnings,
// not failures: the rest of the map is still inspectable.
func (a *Archive) Maps() ([]MapUnit, []error) {
	var units []MapUnit
	var warnings []error

	for i := 0; i < len(a.Entries); i++ {
		e := a.Entries[i]
		if isMapRole(e.Name) || isGroupMarker(e.Name) {
			continue
		}
		if i+1 >= len(a.Entries) || !isMapRole(a.Entries[i+1].Name) {
			continue
		}

		unit := MapUnit{Marker: e.Name, Lumps: make(map[string]DirEntry)}
		j := i + 1
		for ; j < len(a.Entries) && isMapRole(a.Entries[j].Name); j++ {
			unit.Lumps[a.Entries[j].Name] = a.Entries[j]
		}
		for _, role := range requiredRoles {
			if _, ok := unit.Lumps[role]; !ok {
				warnings = append(warnings, &IncompleteMapError{Marker: unit.Marker, Role: role})
			}
		}
		units = append(units, unit)
		i = j - 1
	}

	a.logger.Debug("grouped maps", zap.Int("count", len(units)))
	return units, warnings
}

func isGroupMarker(name string) bool {
	return strings.HasSuffix(name, startSuffix) || strings.HasSuffix(name, endSuffix)
}
