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
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/neotype/neotype"
	"github.com/shenwei356/stable"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:     "info",
	Aliases: []string{"stats"},
	Short:   "Summarise sketch files",
	Run: func(cmd *cobra.Command, args []string) {
		files := getFileListFromArgsAndFile(cmd, args, true, "infile-list", true)

		columns := []stable.Column{
			{Header: "file"},
			{Header: "name"},
			{Header: "kind"},
			{Header: "k", Align: stable.AlignRight},
			{Header: "seed", Align: stable.AlignRight},
			{Header: "sketch-size/scale", Align: stable.AlignRight},
			{Header: "hashes", Align: stable.AlignRight},
			{Header: "seq-length", Align: stable.AlignRight},
		}
		tbl := stable.New()
		tbl.HeaderWithFormat(columns)

		for _, file := range files {
			sk, err := readSketchFile(file)
			checkError(errors.Wrap(err, file))

			var kind string
			var sizeOrScale string
			if sk.Params.Kind == neotype.Scaled {
				kind = "scaled"
				sizeOrScale = humanize.Ftoa(sk.Params.Scale)
			} else {
				kind = "bottom-k"
				sizeOrScale = humanize.Comma(int64(sk.Params.SketchSize))
			}

			tbl.AddRow([]interface{}{
				file,
				sk.Name,
				kind,
				sk.Params.KmerLength,
				sk.Params.HashSeed,
				sizeOrScale,
				humanize.Comma(int64(len(sk.Hashes))),
				humanize.Comma(sk.SeqLength),
			})
		}

		style := &stable.TableStyle{
			Name:      "plain",
			HeaderRow: stable.RowStyle{Begin: "", Sep: "  ", End: ""},
			DataRow:   stable.RowStyle{Begin: "", Sep: "  ", End: ""},
			Padding:   "",
		}
		os.Stdout.Write(tbl.Render(style))
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)
}
