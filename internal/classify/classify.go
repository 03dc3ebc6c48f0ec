// Package classify flags adult content in a panel's catalog from category
// and channel names. The flag is a monotonic OR across every evidence source
// checked during one probe: once set it stays set.
package classify

import (
	"strings"

	"github.com/xtreamprobe/xtream-probe/internal/textnorm"
)

// DefaultKeywords are matched against folded names. "adulto" covers the
// Portuguese panels this tool sees most.
var DefaultKeywords = []string{"adult", "adulto", "xxx", "+18", "porn", "sex"}

// DefaultSampleLimit bounds how many live-channel names are inspected.
const DefaultSampleLimit = 100

// Classifier matches a fixed keyword set against normalized names.
type Classifier struct {
	keywords    []string
	sampleLimit int
}

// New builds a classifier. nil keywords falls back to DefaultKeywords;
// sampleLimit <= 0 falls back to DefaultSampleLimit.
func New(keywords []string, sampleLimit int) *Classifier {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}
	folded := make([]string, len(keywords))
	for i, k := range keywords {
		folded[i] = textnorm.Fold(k)
	}
	return &Classifier{keywords: folded, sampleLimit: sampleLimit}
}

// AnyName reports whether any name contains a keyword after folding.
// Short-circuits on the first hit.
func (c *Classifier) AnyName(names []string) bool {
	for _, n := range names {
		folded := textnorm.Fold(n)
		for _, k := range c.keywords {
			if strings.Contains(folded, k) {
				return true
			}
		}
	}
	return false
}

// Sample returns at most the first sampleLimit names; live catalogs run to
// tens of thousands of entries and the first page is evidence enough.
func (c *Classifier) Sample(names []string) []string {
	if len(names) > c.sampleLimit {
		return names[:c.sampleLimit]
	}
	return names
}
