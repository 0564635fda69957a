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

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
)

// ReadGenotypeTable parses a TSV genotype table: column 0
// is the reference identifier, remaining columns are categorical feature
// values ("-1" for missing). The first row is the header naming the
// feature columns. file may be gzipped; xopen sniffs and decompresses
// transparently.
func ReadGenotypeTable(file string) (*GenotypeTable, error) {
	fh, err := xopen.Ropen(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	defer fh.Close()

	table := &GenotypeTable{}
	first := true
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		if first {
			first = false
			table.FeatureNames = append([]string(nil), fields[1:]...)
			continue
		}

		row := make([]int, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return nil, errors.Wrapf(err, "%s: invalid feature value %q", file, f)
			}
			row[i] = v
		}
		table.IDs = append(table.IDs, fields[0])
		table.Values = append(table.Values, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, file)
	}
	return table, nil
}

// ReadFeatureDictionary parses the feature dictionary:
// three tab-separated columns, feature_id, value_id, label. file may be
// gzipped; xopen sniffs and decompresses transparently.
func ReadFeatureDictionary(file string) (*FeatureDictionary, error) {
	fh, err := xopen.Ropen(file)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	defer fh.Close()

	dict := NewFeatureDictionary()
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		if len(fields) != 3 {
			return nil, errors.Errorf("%s: expected 3 columns (feature_id, value_id, label), got %q", file, line)
		}
		featureID, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, errors.Wrapf(err, "%s: invalid feature id %q", file, fields[0])
		}
		valueID, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, errors.Wrapf(err, "%s: invalid value id %q", file, fields[1])
		}
		dict.Set(featureID, valueID, fields[2])
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, file)
	}
	return dict, nil
}

// FeatureHeaderLine builds the "feat_1  feat_2  ..." suffix for TSV
// output headers.
func FeatureHeaderLine(table *GenotypeTable) string {
	var b strings.Builder
	for _, name := range table.FeatureNames {
		b.WriteByte('\t')
		b.WriteString(name)
	}
	return b.String()
}

// GenotypeRow renders geno[r]'s labels as a TSV suffix, in feature order.
func GenotypeRow(table *GenotypeTable, dict *FeatureDictionary, r int) string {
	var b strings.Builder
	for f := range table.FeatureNames {
		b.WriteByte('\t')
		fmt.Fprint(&b, dict.Label(f, table.Value(r, f)))
	}
	return b.String()
}
