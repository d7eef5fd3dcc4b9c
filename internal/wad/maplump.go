package wad

// Fixed record widths for the map lumps. Decoding is purely positional:
// record i occupies bytes [i*width, (i+1)*width) with no separators.
const (
	thingSize     = 10 // x(2) + y(2) + angle(2) + type(2) + flags(2)
	vertexSize    = 4  // x(2) + y(2)
	linedefSize   = 14 // start(2) + end(2) + flags(2) + special(2) + tag(2) + 2 sidedefs(4)
	sidedefSize   = 30 // offsets(4) + 3 texture names(24) + sector(2)
	sectorSize    = 26 // heights(4) + 2 texture names(16) + light(2) + special(2) + tag(2)
	segSize       = 12 // v1(2) + v2(2) + angle(2) + linedef(2) + direction(2) + offset(2)
	subSectorSize = 4  // count(2) + first seg(2)
	nodeSize      = 28 // partition(8) + 2 bounding boxes(16) + 2 children(4)
)

// NoSidedef is the sentinel a linedef stores for a missing sidedef.
const NoSidedef = 0xFFFF

// Thing flag bits.
const (
	ThingEasy        = 1 << 0
	ThingMedium      = 1 << 1
	ThingHard        = 1 << 2
	ThingDeaf        = 1 << 3
	ThingMultiplayer = 1 << 4
)

// Thing is a map object placement: players, monsters, pickups, decorations.
type Thing struct {
	X, Y  int16
	Angle uint16
	Type  uint16
	Flags uint16
}

// Vertex is a map coordinate referenced by index from linedefs and segs.
type Vertex struct {
	X, Y int16
}

// Linedef is a one- or two-sided wall line between two vertexes.
type Linedef struct {
	Start, End uint16 // vertex indices
	Flags      uint16
	Special    uint16
	Tag        uint16
	Right      uint16 // sidedef index, NoSidedef if absent
	Left       uint16 // sidedef index, NoSidedef if absent
}

// HasRight reports whether the linedef has a right sidedef.
func (l Linedef) HasRight() bool { return l.Right != NoSidedef }

// HasLeft reports whether the linedef has a left sidedef.
func (l Linedef) HasLeft() bool { return l.Left != NoSidedef }

// Sidedef holds the wall textures of one side of a linedef and the sector it
// faces. An empty texture name means no texture.
type Sidedef struct {
	XOffset, YOffset     int16
	Upper, Lower, Middle string
	Sector               uint16 // index into SECTORS
}

// Sector is a horizontal region with floor and ceiling surfaces.
type Sector struct {
	FloorHeight   int16
	CeilingHeight int16
	FloorTex      string
	CeilingTex    string
	Light         uint16
	Special       uint16
	Tag           uint16
}

// Seg is a BSP-generated fragment of a linedef.
type Seg struct {
	V1, V2    uint16
	Angle     int16 // binary angle, full circle spans the int16 range
	Linedef   uint16
	Direction uint16 // 0 same as linedef, 1 opposite
	Offset    int16  // distance along the linedef to the seg start
}

// SubSector is a run of segs forming one convex BSP leaf.
type SubSector struct {
	Count uint16
	First uint16 // index of first seg
}

// BBox is a node child's bounding box in map coordinates.
type BBox struct {
	Top, Bottom, Left, Right int16
}

// NodeChild references either another node or a subsector; the distinction
// is carried by the high bit of the on-disk value.
type NodeChild struct {
	Index     uint16
	Subsector bool
}

const subsectorBit = 0x8000

func nodeChild(raw uint16) NodeChild {
	return NodeChild{
		Index:     raw &^ subsectorBit,
		Subsector: raw&subsectorBit != 0,
	}
}

// Raw returns the on-disk encoding of the child reference.
func (nc NodeChild) Raw() uint16 {
	if nc.Subsector {
		return nc.Index | subsectorBit
	}
	return nc.Index
}

// Node is one BSP partition node.
type Node struct {
	X, Y     int16 // partition line origin
	DX, DY   int16 // partition line direction
	RightBox BBox
	LeftBox  BBox
	Right    NodeChild
	Left     NodeChild
}

// records slices a lump into count fixed-width records, or fails with
// MisalignedLumpError when the size does not divide evenly.
func records(name string, data []byte, width int) (int, error) {
	if len(data)%width != 0 {
		return 0, &MisalignedLumpError{Name: name, Size: len(data), Width: width}
	}
	return len(data) / width, nil
}

// DecodeThings decodes a THINGS lump.
func DecodeThings(data []byte) ([]Thing, error) {
	count, err := records(LumpThings, data, thingSize)
	if err != nil {
		return nil, err
	}
	c := newCursor(data)
	things := make([]Thing, count)
	for i := range things {
		x, _ := c.readInt16()
		y, _ := c.readInt16()
		angle, _ := c.readUint16()
		typ, _ := c.readUint16()
		flags, err := c.readUint16()
		if err != nil {
			return nil, err
		}
		things[i] = Thing{X: x, Y: y, Angle: angle, Type: typ, Flags: flags}
	}
	return things, nil
}

// DecodeVertexes decodes a VERTEXES lump.
func DecodeVertexes(data []byte) ([]Vertex, error) {
	count, err := records(LumpVertexes, data, vertexSize)
	if err != nil {
		return nil, err
	}
	c := newCursor(data)
	vertexes := make([]Vertex, count)
	for i := range vertexes {
		x, _ := c.readInt16()
		y, err := c.readInt16()
		if err != nil {
			return nil, err
		}
		vertexes[i] = Vertex{X: x, Y: y}
	}
	return vertexes, nil
}

// DecodeLinedefs decodes a LINEDEFS lump.
func DecodeLinedefs(data []byte) ([]Linedef, error) {
	count, err := records(LumpLinedefs, data, linedefSize)
	if err != nil {
		return nil, err
	}
	c := newCursor(data)
	linedefs := make([]Linedef, count)
	for i := range linedefs {
		start, _ := c.readUint16()
		end, _ := c.readUint16()
		flags, _ := c.readUint16()
		special, _ := c.readUint16()
		tag, _ := c.readUint16()
		right, _ := c.readUint16()
		left, err := c.readUint16()
		if err != nil {
			return nil, err
		}
		linedefs[i] = Linedef{
			Start: start, End: end,
			Flags: flags, Special: special, Tag: tag,
			Right: right, Left: left,
		}
	}
	return linedefs, nil
}

// DecodeSidedefs decodes a SIDEDEFS lump.
func DecodeSidedefs(data []byte) ([]Sidedef, error) {
	count, err := records(LumpSidedefs, data, sidedefSize)
	if err != nil {
		return nil, err
	}
	c := newCursor(data)
	sidedefs := make([]Sidedef, count)
	for i := range sidedefs {
		xoff, _ := c.readInt16()
		yoff, _ := c.readInt16()
		upper, _ := c.readName()
		lower, _ := c.readName()
		middle, _ := c.readName()
		sector, err := c.readUint16()
		if err != nil {
			return nil, err
		}
		sidedefs[i] = Sidedef{
			XOffset: xoff, YOffset: yoff,
			Upper: upper, Lower: lower, Middle: middle,
			Sector: sector,
		}
	}
	return sidedefs, nil
}

// DecodeSectors decodes a SECTORS lump.
func DecodeSectors(data []byte) ([]Sector, error) {
	count, err := records(LumpSectors, data, sectorSize)
	if err != nil {
		return nil, err
	}
	c := newCursor(data)
	sectors := make([]Sector, count)
	for i := range sectors {
		floor, _ := c.readInt16()
		ceiling, _ := c.readInt16()
		floorTex, _ := c.readName()
		ceilingTex, _ := c.readName()
		light, _ := c.readUint16()
		special, _ := c.readUint16()
		tag, err := c.readUint16()
		if err != nil {
			return nil, err
		}
		sectors[i] = Sector{
			FloorHeight: floor, CeilingHeight: ceiling,
			FloorTex: floorTex, CeilingTex: ceilingTex,
			Light: light, Special: special, Tag: tag,
		}
	}
	return sectors, nil
}

// DecodeSegs decodes a SEGS lump.
func DecodeSegs(data []byte) ([]Seg, error) {
	count, err := records(LumpSegs, data, segSize)
	if err != nil {
		return nil, err
	}
	c := newCursor(data)
	segs := make([]Seg, count)
	for i := range segs {
		v1, _ := c.readUint16()
		v2, _ := c.readUint16()
		angle, _ := c.readInt16()
		linedef, _ := c.readUint16()
		direction, _ := c.readUint16()
		offset, err := c.readInt16()
		if err != nil {
			return nil, err
		}
		segs[i] = Seg{
			V1: v1, V2: v2, Angle: angle,
			Linedef: linedef, Direction: direction, Offset: offset,
		}
	}
	return segs, nil
}

// DecodeSubSectors decodes an SSECTORS lump.
func DecodeSubSectors(data []byte) ([]SubSector, error) {
	count, err := records(LumpSubSectors, data, subSectorSize)
	if err != nil {
		return nil, err
	}
	c := newCursor(data)
	subSectors := make([]SubSector, count)
	for i := range subSectors {
		n, _ := c.readUint16()
		first, err := c.readUint16()
		if err != nil {
			return nil, err
		}
		subSectors[i] = SubSector{Count: n, First: first}
	}
	return subSectors, nil
}

// DecodeNodes decodes a NODES lump.
func DecodeNodes(data []byte) ([]Node, error) {
	count, err := records(LumpNodes, data, nodeSize)
	if err != nil {
		return nil, err
	}
	c := newCursor(data)
	nodes := make([]Node, count)
	for i := range nodes {
		x, _ := c.readInt16()
		y, _ := c.readInt16()
		dx, _ := c.readInt16()
		dy, _ := c.readInt16()
		right, err := readBBox(c)
		if err != nil {
			return nil, err
		}
		left, err := readBBox(c)
		if err != nil {
			return nil, err
		}
		rawRight, _ := c.readUint16()
		rawLeft, err := c.readUint16()
		if err != nil {
			return nil, err
		}
		nodes[i] = Node{
			X: x, Y: y, DX: dx, DY: dy,
			RightBox: right, LeftBox: left,
			Right: nodeChild(rawRight), Left: nodeChild(rawLeft),
		}
	}
	return nodes, nil
}

func readBBox(c *cursor) (BBox, error) {
	top, _ := c.readInt16()
	bottom, _ := c.readInt16()
	left, _ := c.readInt16()
	right, err := c.readInt16()
	return BBox{Top: top, Bottom: bottom, Left: left, Right: right}, err
}
