// Package scanline turns the inflated IDAT stream back into pixel samples:
// it unpacks each row to one byte per sample and reverses the row filter.
package scanline

import (
	"fmt"

	"basicpng.adpollak.net/internal/pngerr"
)

// Filter type, as per the PNG spec.
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
	nFilter   = 5
)

// PaethPredictor picks whichever of left (a), up (b) and up-left (c) is
// closest to a+b-c. Ties go to a, then b. The arithmetic is not reduced
// modulo 256.
func PaethPredictor(a, b, c int) int {
	p := a + b - c
	pa := abs(p - a)
	pb := abs(p - b)
	pc := abs(p - c)

	if pa <= pb && pa <= pc {
		return a
	} else if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ReconstructRow reverses filter on cur in place. prior is the previous
// reconstructed row (all zero for the first row) and must be as long as
// cur. bpp is the distance between a sample and the same channel of the
// pixel to its left.
func ReconstructRow(filter byte, cur, prior []byte, bpp int) error {
	if len(prior) != len(cur) {
		return pngerr.FormatError(fmt.Sprintf("row length %d does not match previous row length %d", len(cur), len(prior)))
	}

	switch filter {
	case ftNone:
		// No-op.
	case ftSub:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}
	case ftUp:
		for i, p := range prior {
			cur[i] += p
		}
	case ftAverage:
		// The first pixel has nothing to its left.
		for i := 0; i < bpp && i < len(cur); i++ {
			cur[i] += prior[i] / 2
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += uint8((int(cur[i-bpp]) + int(prior[i])) / 2)
		}
	case ftPaeth:
		for i := range cur {
			var left, upLeft int
			if i >= bpp {
				left = int(cur[i-bpp])
				upLeft = int(prior[i-bpp])
			}
			cur[i] += uint8(PaethPredictor(left, int(prior[i]), upLeft))
		}
	default:
		return pngerr.FormatError(fmt.Sprintf("non-standard filter type %d", filter))
	}
	return nil
}
