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
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/neotype/neotype"
	"github.com/spf13/cobra"
)

var sketchCmd = &cobra.Command{
	Use:   "sketch",
	Short: "Build a reference sketch from sequence files",
	Long: `Build a reference sketch from sequence files

Each input file becomes one named sketch (name defaults to the file's
basename without extension, overridable with -n for a single file).
Records within a file are folded into the same sketch, letting a
multi-contig assembly sketch as one reference.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)
		runtime.GOMAXPROCS(opt.NumCPUs)

		k := getFlagPositiveInt(cmd, "kmer-len")
		if k > 32 {
			checkError(fmt.Errorf("k must be <= 32"))
		}
		seed := getFlagUint64(cmd, "hash-seed")
		scale := getFlagFloat64(cmd, "scale")
		sketchSize := getFlagNonNegativeInt(cmd, "sketch-size")
		outDir := getFlagPath(cmd, "out-dir")
		name := getFlagString(cmd, "name")

		var params neotype.SketchParams
		if scale > 0 {
			if scale > 1 {
				checkError(fmt.Errorf("value of --scale should be in (0, 1]"))
			}
			params = neotype.SketchParams{Kind: neotype.Scaled, KmerLength: k, HashSeed: seed, Scale: scale}
		} else {
			if sketchSize <= 0 {
				checkError(fmt.Errorf("either --sketch-size or --scale must be given"))
			}
			params = neotype.SketchParams{Kind: neotype.MinHashBottomK, KmerLength: k, HashSeed: seed, SketchSize: sketchSize}
		}

		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)
		if len(files) > 1 && name != "" {
			checkError(fmt.Errorf("-n/--name only applies to a single input file"))
		}
		if outDir != "" {
			checkError(os.MkdirAll(outDir, 0755))
		}

		var wg sync.WaitGroup
		token := make(chan struct{}, opt.NumCPUs)
		for _, file := range files {
			wg.Add(1)
			token <- struct{}{}
			go func(file string) {
				defer func() { <-token; wg.Done() }()
				if err := buildSketch(file, name, outDir, params, opt.Compress); err != nil {
					checkError(errors.Wrap(err, file))
				}
			}(file)
		}
		wg.Wait()
	},
}

func buildSketch(file, name, outDir string, params neotype.SketchParams, compress bool) error {
	if name == "" {
		base := filepath.Base(file)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	reader, err := fastx.NewDefaultReader(file)
	if err != nil {
		return err
	}

	sk := neotype.NewSketcher(params)
	var seqLength int64
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		seqLength += int64(len(record.Seq.Seq))
		if err := sk.Process(neotype.Record{ID: string(record.ID), Seq: record.Seq}); err != nil {
			return err
		}
	}

	sketch := &neotype.Sketch{
		Name:      name,
		SeqLength: seqLength,
		Hashes:    sk.ToVec(),
		Params:    params,
	}

	outFile := filepath.Join(outDir, name+neotype.ExtensionFor(params.Kind))
	if compress {
		outFile += ".gz"
	}

	w, gw, f, err := outStream(outFile, compress)
	if err != nil {
		return err
	}
	defer func() {
		w.Flush()
		if gw != nil {
			gw.Close()
		}
		f.Close()
	}()

	if err := neotype.WriteSketch(w, sketch); err != nil {
		return err
	}
	log.Infof("%s: %d hashes written to %s", name, len(sketch.Hashes), outFile)
	return nil
}

func init() {
	RootCmd.AddCommand(sketchCmd)

	sketchCmd.Flags().IntP("kmer-len", "k", 21, "k-mer length")
	sketchCmd.Flags().Uint64P("hash-seed", "S", 0, "seed mixed into the k-mer hash")
	sketchCmd.Flags().IntP("sketch-size", "s", 1000, "bottom-k sketch size (0 to use --scale instead)")
	sketchCmd.Flags().Float64P("scale", "", 0, "scaled-sketch fraction in (0,1], overrides --sketch-size")
	sketchCmd.Flags().StringP("out-dir", "O", ".", "output directory for sketch files")
	sketchCmd.Flags().StringP("name", "n", "", "sketch name, only valid for a single input file (default: file basename)")
}
