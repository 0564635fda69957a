// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package neotype

import "strconv"

// MissingValue is the sentinel feature-value id for a missing call.
const MissingValue = -1

// GenotypeTable holds one ordered row per reference (dense reference
// index 0..R-1, reused across the engine), each row an F-tuple of
// categorical feature-value ids. -1 means missing.
type GenotypeTable struct {
	FeatureNames []string // len F, the header row
	IDs          []string // len R, column 0
	Values       [][]int  // len R, each len F
}

// NumFeatures returns F.
func (g *GenotypeTable) NumFeatures() int { return len(g.FeatureNames) }

// NumRefs returns R.
func (g *GenotypeTable) NumRefs() int { return len(g.IDs) }

// Value returns geno[r][f], or MissingValue if out of range.
func (g *GenotypeTable) Value(r, f int) int {
	if r < 0 || r >= len(g.Values) {
		return MissingValue
	}
	row := g.Values[r]
	if f < 0 || f >= len(row) {
		return MissingValue
	}
	return row[f]
}

// FeatureDictionary maps (feature_id, value_id) -> display label, for
// formatting predictions and consensus output.
type FeatureDictionary struct {
	labels map[int]map[int]string
}

// NewFeatureDictionary returns an empty dictionary.
func NewFeatureDictionary() *FeatureDictionary {
	return &FeatureDictionary{labels: make(map[int]map[int]string)}
}

// Set records the label for (feature, value).
func (d *FeatureDictionary) Set(feature, value int, label string) {
	m, ok := d.labels[feature]
	if !ok {
		m = make(map[int]string)
		d.labels[feature] = m
	}
	m[value] = label
}

// Label returns the display label for (feature, value), or the value's
// decimal string if no label was ever registered.
func (d *FeatureDictionary) Label(feature, value int) string {
	if value == MissingValue {
		return "-"
	}
	if m, ok := d.labels[feature]; ok {
		if label, ok := m[value]; ok {
			return label
		}
	}
	return strconv.Itoa(value)
}

// Validate runs the collection-integrity check: every sketch's name
// must equal the genotype row at the same index, and the counts must
// match.
func Validate(sketches []*Sketch, geno *GenotypeTable) error {
	if len(sketches) != geno.NumRefs() {
		return ErrInvalidSize
	}
	for i, sk := range sketches {
		if sk.Name != geno.IDs[i] {
			return &InvalidIdentifierError{Index: i, Expected: sk.Name, Got: geno.IDs[i]}
		}
	}
	return nil
}
