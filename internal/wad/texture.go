package wad

import "fmt"

const (
	pnameSize      = 8  // one patch name entry, after the leading i32 count
	texHeaderSize  = 22 // name(8) + masked(4) + width(2) + height(2) + coldir(4) + patch count(2)
	patchPlaceSize = 10 // x(2) + y(2) + patch(2) + stepdir(2) + colormap(2)
)

// PatchPlacement positions one patch inside a texture. StepDir and ColorMap
// are ignored by every known engine but preserved verbatim so a re-encode is
// byte-identical.
type PatchPlacement struct {
	XOffset  int16
	YOffset  int16
	Patch    int16 // index into PNAMES
	StepDir  int16
	ColorMap int16
}

// TextureDef is one wall texture: a named canvas composited from patches.
type TextureDef struct {
	Name    string
	Masked  int32 // historically a bool, kept raw
	Width   int16
	Height  int16
	ColDir  int32 // column directory, unused since the alpha releases
	Patches []PatchPlacement
}

// DecodePatchNames decodes a PNAMES lump: an i32 count followed by that many
// 8-byte patch names. TEXTURE1/2 reference patches by index into this table.
func DecodePatchNames(data []byte) ([]string, error) {
	c := newCursor(data)
	count, err := c.readInt32()
	if err != nil {
		return nil, fmt.Errorf("read PNAMES count: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("PNAMES: negative name count %d", count)
	}
	// Size-check the declared count before allocating for it.
	if int64(count)*pnameSize > int64(c.remaining()) {
		return nil, &TruncatedDataError{Offset: 4, Len: int(count) * pnameSize}
	}
	names := make([]string, count)
	for i := range names {
		names[i], err = c.readName()
		if err != nil {
			return nil, fmt.Errorf("read PNAMES entry %d: %w", i, err)
		}
	}
	return names, nil
}

// DecodeTextures decodes a TEXTURE1 or TEXTURE2 lump: an i32 count, count
// i32 offsets relative to the lump start, and one texture definition at each
// offset.
func DecodeTextures(name string, data []byte) ([]TextureDef, error) {
	c := newCursor(data)
	count, err := c.readInt32()
	if err != nil {
		return nil, fmt.Errorf("read %s count: %w", name, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%s: negative texture count %d", name, count)
	}
	if int64(count)*4 > int64(c.remaining()) {
		return nil, &TruncatedDataError{Offset: 4, Len: int(count) * 4}
	}
	offsets := make([]int32, count)
	for i := range offsets {
		offsets[i], err = c.readInt32()
		if err != nil {
			return nil, fmt.Errorf("read %s offset %d: %w", name, i, err)
		}
	}

	textures := make([]TextureDef, count)
	for i, off := range offsets {
		if off < 0 {
			return nil, fmt.Errorf("%s: negative definition offset %d", name, off)
		}
		c.seek(int(off))
		tex, err := readTextureDef(c)
		if err != nil {
			return nil, fmt.Errorf("%s definition %d: %w", name, i, err)
		}
		textures[i] = tex
	}
	return textures, nil
}

func readTextureDef(c *cursor) (TextureDef, error) {
	var tex TextureDef
	name, err := c.readName()
	if err != nil {
		return tex, err
	}
	masked, _ := c.readInt32()
	width, _ := c.readInt16()
	height, _ := c.readInt16()
	colDir, _ := c.readInt32()
	patchCount, err := c.readInt16()
	if err != nil {
		return tex, err
	}
	if patchCount < 0 {
		return tex, fmt.Errorf("negative patch count %d", patchCount)
	}

	tex = TextureDef{
		Name: name, Masked: masked,
		Width: width, Height: height, ColDir: colDir,
		Patches: make([]PatchPlacement, patchCount),
	}
	for i := range tex.Patches {
		x, _ := c.readInt16()
		y, _ := c.readInt16()
		patch, _ := c.readInt16()
		stepDir, _ := c.readInt16()
		colorMap, err := c.readInt16()
		if err != nil {
			return tex, err
		}
		tex.Patches[i] = PatchPlacement{
			XOffset: x, YOffset: y, Patch: patch,
			StepDir: stepDir, ColorMap: colorMap,
		}
	}
	return tex, nil
}
