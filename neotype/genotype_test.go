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

import "testing"

func refSketches(names ...string) []*Sketch {
	out := make([]*Sketch, len(names))
	for i, n := range names {
		out[i] = &Sketch{Name: n}
	}
	return out
}

// TestValidateOK checks that matching identifiers in the same order pass.
func TestValidateOK(t *testing.T) {
	geno := &GenotypeTable{IDs: []string{"A", "B", "C"}, Values: [][]int{{0}, {0}, {1}}}
	if err := Validate(refSketches("A", "B", "C"), geno); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

// TestValidateSwappedRows checks that swapping genotype rows 2 and 3
// (0-based) is caught at index 2.
func TestValidateSwappedRows(t *testing.T) {
	geno := &GenotypeTable{IDs: []string{"A", "B", "D", "C"}, Values: [][]int{{0}, {0}, {1}, {1}}}
	err := Validate(refSketches("A", "B", "C", "D"), geno)
	if err == nil {
		t.Fatalf("Validate() = nil, want InvalidIdentifierError")
	}
	ie, ok := err.(*InvalidIdentifierError)
	if !ok {
		t.Fatalf("Validate() err type = %T, want *InvalidIdentifierError", err)
	}
	if ie.Index != 2 || ie.Expected != "C" || ie.Got != "D" {
		t.Fatalf("Validate() = %+v, want Index=2 Expected=C Got=D", ie)
	}
}

// TestValidateSizeMismatch checks that the reference count must match
// the genotype table's row count.
func TestValidateSizeMismatch(t *testing.T) {
	geno := &GenotypeTable{IDs: []string{"A", "B"}, Values: [][]int{{0}, {1}}}
	if err := Validate(refSketches("A", "B", "C"), geno); err != ErrInvalidSize {
		t.Fatalf("Validate() = %v, want ErrInvalidSize", err)
	}
}

func TestFeatureDictionaryLabel(t *testing.T) {
	d := NewFeatureDictionary()
	d.Set(0, 1, "ST131")
	if got := d.Label(0, 1); got != "ST131" {
		t.Fatalf("Label(0,1) = %q, want ST131", got)
	}
	if got := d.Label(0, 2); got != "2" {
		t.Fatalf("Label(0,2) with no registered label = %q, want \"2\"", got)
	}
	if got := d.Label(0, MissingValue); got != "-" {
		t.Fatalf("Label(0,-1) = %q, want \"-\"", got)
	}
}

func TestGenotypeTableValueOutOfRange(t *testing.T) {
	geno := &GenotypeTable{IDs: []string{"A"}, Values: [][]int{{1, 2}}}
	if v := geno.Value(5, 0); v != MissingValue {
		t.Fatalf("Value(5,0) = %d, want MissingValue", v)
	}
	if v := geno.Value(0, 9); v != MissingValue {
		t.Fatalf("Value(0,9) = %d, want MissingValue", v)
	}
}
