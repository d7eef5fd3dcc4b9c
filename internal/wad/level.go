package wad

import (
	"fmt"

	"go.uber.org/zap"
)

// Level holds the decoded lumps of one map. Slices for lumps the WAD omits
// stay nil; lumps that fail to decode are recorded in Errs and leave their
// slot empty, so one bad lump never blocks inspection of the rest.
type Level struct {
	Name       string
	Things     []Thing
	Vertexes   []Vertex
	Linedefs   []Linedef
	Sidedefs   []Sidedef
	Sectors    []Sector
	Segs       []Seg
	SubSectors []SubSector
	Nodes      []Node
	Reject     *RejectTable
	Blockmap   *Blockmap

	// Errs maps role name to the decode failure for that lump.
	Errs map[string]error
}

// ReadMap decodes every lump present in a map unit. SECTORS is decoded
// before REJECT because the reject table cannot self-describe its dimension;
// if SECTORS itself failed, REJECT is skipped with a dependency error.
func (a *Archive) ReadMap(unit MapUnit) *Level {
	level := &Level{Name: unit.Marker, Errs: make(map[string]error)}

	decode := func(role string, fn func(data []byte) error) {
		e, ok := unit.Entry(role)
		if !ok {
			return
		}
		if err := fn(a.LumpData(e)); err != nil {
			a.logger.Warn("lump decode failed",
				zap.String("map", unit.Marker),
				zap.String("lump", role),
				zap.Error(err))
			level.Errs[role] = err
		}
	}

	decode(LumpThings, func(d []byte) (err error) {
		level.Things, err = DecodeThings(d)
		return
	})
	decode(LumpVertexes, func(d []byte) (err error) {
		level.Vertexes, err = DecodeVertexes(d)
		return
	})
	decode(LumpLinedefs, func(d []byte) (err error) {
		level.Linedefs, err = DecodeLinedefs(d)
		return
	})
	decode(LumpSidedefs, func(d []byte) (err error) {
		level.Sidedefs, err = DecodeSidedefs(d)
		return
	})
	decode(LumpSectors, func(d []byte) (err error) {
		level.Sectors, err = DecodeSectors(d)
		return
	})
	decode(LumpSegs, func(d []byte) (err error) {
		level.Segs, err = DecodeSegs(d)
		return
	})
	decode(LumpSubSectors, func(d []byte) (err error) {
		level.SubSectors, err = DecodeSubSectors(d)
		return
	})
	decode(LumpNodes, func(d []byte) (err error) {
		level.Nodes, err = DecodeNodes(d)
		return
	})
	decode(LumpReject, func(d []byte) (err error) {
		if _, ok := unit.Entry(LumpSectors); !ok || level.Errs[LumpSectors] != nil {
			return fmt.Errorf("reject needs sector count, SECTORS unavailable")
		}
		level.Reject, err = DecodeReject(d, len(level.Sectors), a.strict)
		return
	})
	decode(LumpBlockmap, func(d []byte) (err error) {
		level.Blockmap, err = DecodeBlockmap(d)
		return
	})

	return level
}
