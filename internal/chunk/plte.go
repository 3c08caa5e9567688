package chunk

// MaxPaletteEntries is the largest PLTE this decoder installs.
const MaxPaletteEntries = 255

// Palette maps an indexed-color sample to its RGB triple.
type Palette [][3]uint8

// ParsePLTE builds a palette from a PLTE payload. Payloads that are empty,
// not a multiple of three, or longer than MaxPaletteEntries entries are
// ignored: ok is false and no palette should be installed.
func ParsePLTE(data []byte) (p Palette, ok bool) {
	np := len(data) / 3
	if len(data)%3 != 0 || np < 1 || np > MaxPaletteEntries {
		return nil, false
	}
	p = make(Palette, np)
	for i := range p {
		p[i] = [3]uint8{data[3*i], data[3*i+1], data[3*i+2]}
	}
	return p, true
}
