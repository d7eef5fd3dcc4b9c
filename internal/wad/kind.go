package wad

// Canonical lump names.
const (
	LumpThings     = "THINGS"
	LumpLinedefs   = "LINEDEFS"
	LumpSidedefs   = "SIDEDEFS"
	LumpVertexes   = "VERTEXES"
	LumpSegs       = "SEGS"
	LumpSubSectors = "SSECTORS"
	LumpNodes      = "NODES"
	LumpSectors    = "SECTORS"
	LumpReject     = "REJECT"
	LumpBlockmap   = "BLOCKMAP"
	LumpPNames     = "PNAMES"
	LumpTexture1   = "TEXTURE1"
	LumpTexture2   = "TEXTURE2"
)

// mapRoles lists the map lump names in conventional directory order. The
// order is not enforced on decode, but grouping consumes a run of these names
// following a map marker.
var mapRoles = []string{
	LumpThings, LumpLinedefs, LumpSidedefs, LumpVertexes, LumpSegs,
	LumpSubSectors, LumpNodes, LumpSectors, LumpReject, LumpBlockmap,
}

// requiredRoles must all be present for a map to be decodable; the rest are
// BSP or lookup acceleration data that some WADs omit.
var requiredRoles = []string{
	LumpThings, LumpVertexes, LumpLinedefs, LumpSidedefs, LumpSectors,
}

// Kind classifies a lump by name for decode dispatch.
type Kind int

const (
	KindUnknown Kind = iota // opaque bytes, passed through undecoded
	KindThings
	KindLinedefs
	KindSidedefs
	KindVertexes
	KindSegs
	KindSubSectors
	KindNodes
	KindSectors
	KindReject
	KindBlockmap
	KindPNames
	KindTexture
)

var kindByName = map[string]Kind{
	LumpThings:     KindThings,
	LumpLinedefs:   KindLinedefs,
	LumpSidedefs:   KindSidedefs,
	LumpVertexes:   KindVertexes,
	LumpSegs:       KindSegs,
	LumpSubSectors: KindSubSectors,
	LumpNodes:      KindNodes,
	LumpSectors:    KindSectors,
	LumpReject:     KindReject,
	LumpBlockmap:   KindBlockmap,
	LumpPNames:     KindPNames,
	LumpTexture1:   KindTexture,
	LumpTexture2:   KindTexture,
}

// KindOf returns the Kind for a lump name, or KindUnknown.
func KindOf(name string) Kind {
	return kindByName[name]
}

func isMapRole(name string) bool {
	k := kindByName[name]
	return k >= KindThings && k <= KindBlockmap
}
