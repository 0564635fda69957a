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
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/neotype/neotype"
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict genotype features of a read stream against a reference collection",
	Long: `Predict genotype features of a read stream against a reference collection

Streaming mode (default, --stream) emits one block of rows per read,
each row a (feature, ranked value) pair with its running sum-of-shared-
hashes, stability flag, and preference score. Bulk mode accumulates the
whole stream into one sketch before ranking references once.

In either mode, --consensus N additionally reduces the top N ranked
references (N must be odd) to one majority-vote label per feature.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		genoFile := getFlagPath(cmd, "genotype")
		dictFile := getFlagPath(cmd, "dictionary")
		if genoFile == "" {
			checkError(fmt.Errorf("flag -g/--genotype needed"))
		}

		stream := getFlagBool(cmd, "stream")
		top := getFlagNonNegativeInt(cmd, "top")
		limit := getFlagNonNegativeInt(cmd, "limit")
		ranks := getFlagNonNegativeInt(cmd, "ranks")
		stability := getFlagNonNegativeInt(cmd, "stability")
		consensus := getFlagNonNegativeInt(cmd, "consensus")
		header := getFlagBool(cmd, "header")

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", false)
		sketches, err := readSketchFiles(files)
		checkError(err)
		if len(sketches) == 0 {
			checkError(fmt.Errorf("at least one reference sketch is required"))
		}

		geno, err := neotype.ReadGenotypeTable(genoFile)
		checkError(errors.Wrap(err, genoFile))
		checkError(neotype.Validate(sketches, geno))

		var dict *neotype.FeatureDictionary
		if dictFile != "" {
			dict, err = neotype.ReadFeatureDictionary(dictFile)
			checkError(errors.Wrap(err, dictFile))
		} else {
			dict = neotype.NewFeatureDictionary()
		}

		querySeq := getFlagPath(cmd, "query-seq")
		if querySeq == "" {
			checkError(fmt.Errorf("flag --query-seq needed"))
		}
		reader, err := fastx.NewDefaultReader(querySeq)
		checkError(errors.Wrap(err, querySeq))

		nextRecord := func() (neotype.Record, error) {
			record, err := reader.Read()
			if err != nil {
				return neotype.Record{}, err
			}
			return neotype.Record{ID: string(record.ID), Seq: record.Seq}, nil
		}

		p := &neotype.Predictor{Refs: sketches, Genotype: geno, Dictionary: dict, Out: os.Stdout}
		if header {
			p.WriteHeader(stream)
		}

		params := sketches[0].Params
		minScale := sketches[0].Params.Scale

		if stream {
			checkError(p.RunStreaming(params, minScale, opt.NumCPUs, ranks, stability, limit, consensus, nextRecord))
			return
		}

		n, ranking, err := p.RunBulk(params, minScale, top, limit, nextRecord)
		checkError(err)

		if consensus > 0 {
			checkError(p.Consensus(n, ranking, consensus))
		}
	},
}

func init() {
	RootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringP("genotype", "g", "", "genotype table (TSV)")
	predictCmd.Flags().StringP("dictionary", "d", "", "feature dictionary (TSV: feature_id, value_id, label)")
	predictCmd.Flags().StringP("query-seq", "q", "", "query read stream (FASTA/FASTQ, possibly gzipped)")
	predictCmd.Flags().BoolP("stream", "", true, "streaming SSSH mode (false selects bulk shared-hash mode)")
	predictCmd.Flags().IntP("top", "t", 0, "bulk mode: keep only the top N ranked references (0 = all)")
	predictCmd.Flags().IntP("limit", "l", 0, "stop after this many reads (0 = unbounded)")
	predictCmd.Flags().IntP("ranks", "r", neotype.DefaultRanks, "streaming mode: number of highest-SSH references considered per read")
	predictCmd.Flags().IntP("stability", "", neotype.DefaultStability, "streaming mode: sliding window size for the stability indicator")
	predictCmd.Flags().IntP("consensus", "c", 0, "reduce the top N ranked references to one label per feature (N must be odd, 0 disables)")
	predictCmd.Flags().BoolP("header", "H", true, "print the TSV header line")
}
