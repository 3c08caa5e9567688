package scanline

// Unpack expands one row of packed samples into one byte per sample,
// appending to dst[:0].
//
// 8-bit samples are copied. 16-bit samples keep their high byte, rounded
// up when the low byte is at least 128. 1, 2 and 4-bit samples are split
// most significant group first and, unless they are palette indices,
// stretched to the full 0..255 range.
func Unpack(dst, packed []byte, depth uint8, indexed bool) []byte {
	dst = dst[:0]
	switch depth {
	case 8:
		return append(dst, packed...)
	case 16:
		for i := 0; i+1 < len(packed); i += 2 {
			dst = append(dst, Downsample16(packed[i], packed[i+1]))
		}
		return dst
	case 1, 2, 4:
		mask := byte(1)<<depth - 1
		for _, b := range packed {
			for shift := 8 - int(depth); shift >= 0; shift -= int(depth) {
				v := (b >> uint(shift)) & mask
				if !indexed {
					v = Rescale(v, depth)
				}
				dst = append(dst, v)
			}
		}
		return dst
	}
	return dst
}

// Downsample16 rounds a big-endian 16-bit sample to the nearest 8-bit one.
func Downsample16(hi, lo byte) byte {
	if lo >= 128 && hi < 255 {
		return hi + 1
	}
	return hi
}

// Rescale maps v from [0, 2^depth-1] onto [0, 255], rounding half up.
func Rescale(v byte, depth uint8) byte {
	if depth == 0 || depth >= 8 {
		return v
	}
	maxValue := int(1)<<depth - 1
	scaled := (int(v)*255*2 + maxValue) / (2 * maxValue)
	if scaled > 255 {
		return 255
	}
	return byte(scaled)
}
