package extract

import (
	"fmt"
	"strings"
)

// SlideBlock is the extracted content of one slide. Blocks are assembled into
// the content blob in slide order; once concatenated the slide boundaries
// survive only as the textual headers.
type SlideBlock struct {
	Number   int
	Label    string
	Segments []string
}

func (b SlideBlock) header() string {
	if b.Label != "" {
		return fmt.Sprintf("--- Slide %d (%s) ---", b.Number, b.Label)
	}
	return fmt.Sprintf("--- Slide %d ---", b.Number)
}

// BuildBlob concatenates slide blocks into the single text artifact consumed
// by the analyzer.
func BuildBlob(blocks []SlideBlock) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.header())
		sb.WriteString("\n\n")
		for _, seg := range b.Segments {
			sb.WriteString(seg)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
