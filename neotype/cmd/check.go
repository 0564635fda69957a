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

package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shenwei356/neotype/neotype"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a reference collection and genotype table agree on order",
	Long: `Check that a reference collection and genotype table agree on order

Every reference sketch's name must equal the genotype row at the same
index, and both must have the same number of entries. This is the same
collection-integrity check that predict runs before it starts.

`,
	Run: func(cmd *cobra.Command, args []string) {
		genoFile := getFlagPath(cmd, "genotype")
		if genoFile == "" {
			checkError(fmt.Errorf("flag -g/--genotype needed"))
		}

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", false)
		sketches, err := readSketchFiles(files)
		checkError(err)

		geno, err := neotype.ReadGenotypeTable(genoFile)
		checkError(errors.Wrap(err, genoFile))

		if err := neotype.Validate(sketches, geno); err != nil {
			checkError(err)
		}

		fmt.Printf("OK: %d references match the genotype table\n", len(sketches))
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("genotype", "g", "", "genotype table (TSV)")
}
