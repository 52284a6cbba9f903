// Package colormix blends participant colours into a single display
// colour for regions visited by more than one participant.
package colormix

import (
	"fmt"
	"math"
	"strings"
)

// NeutralGrey substitutes for malformed input colours so a single bad
// record cannot fail a whole map render.
const NeutralGrey = "#808080"

// Merge combines the given hex colours into one. A single colour is
// returned unchanged (normalised to upper-case #RRGGBB). Multiple
// colours are blended per channel with a quadratic mean,
// round(sqrt(mean(c^2))), which weights towards the brighter inputs
// rather than washing everything out like an arithmetic average.
//
// The result depends only on the multiset of inputs, so merging is
// order-independent. Empty input returns NeutralGrey, but the unvisited
// fill is the caller's decision; callers should not pass zero colours.
func Merge(colours []string) string {
	if len(colours) == 0 {
		return NeutralGrey
	}

	if len(colours) == 1 {
		r, g, b := parseHex(colours[0])
		return format(r, g, b)
	}

	var sumR, sumG, sumB float64
	for _, c := range colours {
		r, g, b := parseHex(c)
		sumR += float64(r) * float64(r)
		sumG += float64(g) * float64(g)
		sumB += float64(b) * float64(b)
	}
	n := float64(len(colours))
	return format(
		quadMean(sumR, n),
		quadMean(sumG, n),
		quadMean(sumB, n),
	)
}

func quadMean(sumSquares, n float64) int {
	v := int(math.Round(math.Sqrt(sumSquares / n)))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// parseHex decomposes a hex colour into channels. Anything that is not
// six hex digits after an optional "#" decomposes as NeutralGrey.
func parseHex(colour string) (r, g, b int) {
	if !Valid(colour) {
		colour = NeutralGrey
	}
	s := strings.TrimPrefix(strings.TrimSpace(colour), "#")
	var rr, gg, bb int
	_, _ = fmt.Sscanf(s, "%02x%02x%02x", &rr, &gg, &bb)
	return rr, gg, bb
}

// Valid reports whether colour is a well-formed hex colour (six hex
// digits after an optional "#").
func Valid(colour string) bool {
	s := strings.TrimPrefix(strings.TrimSpace(colour), "#")
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Normalise returns the canonical "#RRGGBB" upper-case form.
// Malformed colours normalise to NeutralGrey.
func Normalise(colour string) string {
	r, g, b := parseHex(colour)
	return format(r, g, b)
}

func format(r, g, b int) string {
	return strings.ToUpper(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}
