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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/neotype/neotype"
	"github.com/spf13/cobra"
)

var sharedCmd = &cobra.Command{
	Use:   "shared",
	Short: "Pairwise shared-hash counts",
	Long: `Pairwise shared-hash counts

Two forms:

  1. Stream-vs-reference: --query-seq accumulates one (gzipped) FASTA/FASTQ
     file into a single query sketch and reports its shared-hash count
     against every reference sketch given as positional arguments.

  2. Collection-vs-collection: --query-sketch-list names a file listing a
     second collection of sketch files, one per line; every reference is
     compared against every query sketch.

`,
	Run: func(cmd *cobra.Command, args []string) {
		refFiles := getFileListFromArgsAndFile(cmd, args, true, "infile-list", false)
		refs, err := readSketchFiles(refFiles)
		checkError(err)

		querySeq := getFlagPath(cmd, "query-seq")
		querySketchList := getFlagPath(cmd, "query-sketch-list")

		switch {
		case querySeq != "" && querySketchList != "":
			checkError(fmt.Errorf("only one of --query-seq or --query-sketch-list may be given"))
		case querySeq != "":
			runSharedStream(refs, querySeq)
		case querySketchList != "":
			runSharedBulk(refs, querySketchList)
		default:
			checkError(fmt.Errorf("one of --query-seq or --query-sketch-list is required"))
		}
	},
}

// runSharedStream accumulates a sequence file into one query sketch and
// reports its shared-hash count against every reference.
func runSharedStream(refs []*neotype.Sketch, queryFile string) {
	if len(refs) == 0 {
		checkError(fmt.Errorf("at least one reference sketch is required"))
	}
	params := refs[0].Params

	reader, err := fastx.NewDefaultReader(queryFile)
	checkError(errors.Wrap(err, queryFile))

	sk := neotype.NewSketcher(params)
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			checkError(err)
		}
		checkError(sk.Process(neotype.Record{ID: string(record.ID), Seq: record.Seq}))
	}
	queryHashes := sk.ToVec()

	for _, ref := range refs {
		scale, err := neotype.Compatible(queryFile, params, ref.Name, ref.Params)
		checkError(err)
		shared := neotype.Common(ref.Hashes, queryHashes, scale)
		fmt.Printf("%s\t%s\t%d\n", queryFile, ref.Name, shared)
	}
}

// runSharedBulk compares every reference against every query sketch in
// a second collection.
func runSharedBulk(refs []*neotype.Sketch, queryListFile string) {
	fh, err := os.Open(queryListFile)
	checkError(err)
	defer fh.Close()

	var queryFiles []string
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			queryFiles = append(queryFiles, line)
		}
	}
	checkError(scanner.Err())

	queries, err := readSketchFiles(queryFiles)
	checkError(err)

	for _, ref := range refs {
		for _, q := range queries {
			scale, err := neotype.Compatible(ref.Name, ref.Params, q.Name, q.Params)
			checkError(err)
			shared := neotype.Common(ref.Hashes, q.Hashes, scale)
			fmt.Printf("%s\t%s\t%d\n", ref.Name, q.Name, shared)
		}
	}
}

func init() {
	RootCmd.AddCommand(sharedCmd)

	sharedCmd.Flags().StringP("query-seq", "q", "", "query sequence file (FASTA/FASTQ, stream-vs-reference mode)")
	sharedCmd.Flags().StringP("query-sketch-list", "Q", "", "file listing query sketch files, one per line (collection-vs-collection mode)")
}
