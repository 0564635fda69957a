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
	"os"
	"sort"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/shenwei356/go-logging"
	"github.com/shenwei356/natsort"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
)

var log = logging.MustGetLogger("neotype")

// Options holds the persistent flags shared by every subcommand.
type Options struct {
	NumCPUs  int
	Verbose  bool
	Compress bool
}

func getOptions(cmd *cobra.Command) *Options {
	return &Options{
		NumCPUs:  getFlagPositiveInt(cmd, "threads"),
		Verbose:  getFlagBool(cmd, "verbose"),
		Compress: !getFlagBool(cmd, "no-compress"),
	}
}

// checkError prints err and exits with status 1 if err is non-nil. Every
// subcommand funnels its fatal errors through this, the way the rest of
// this tool family does.
func checkError(err error) {
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func getFlagString(cmd *cobra.Command, flag string) string {
	v, err := cmd.Flags().GetString(flag)
	checkError(err)
	return v
}

// getFlagPath is getFlagString with leading ~ expanded to the user's
// home directory, for flags that take a filesystem path. An empty
// value or a failed lookup of the home directory passes v through
// unchanged.
func getFlagPath(cmd *cobra.Command, flag string) string {
	v := getFlagString(cmd, flag)
	if v == "" {
		return v
	}
	expanded, err := homedir.Expand(v)
	if err != nil {
		return v
	}
	return expanded
}

func getFlagBool(cmd *cobra.Command, flag string) bool {
	v, err := cmd.Flags().GetBool(flag)
	checkError(err)
	return v
}

func getFlagInt(cmd *cobra.Command, flag string) int {
	v, err := cmd.Flags().GetInt(flag)
	checkError(err)
	return v
}

func getFlagPositiveInt(cmd *cobra.Command, flag string) int {
	v := getFlagInt(cmd, flag)
	if v <= 0 {
		checkError(fmt.Errorf("value of flag --%s should be positive", flag))
	}
	return v
}

func getFlagNonNegativeInt(cmd *cobra.Command, flag string) int {
	v := getFlagInt(cmd, flag)
	if v < 0 {
		checkError(fmt.Errorf("value of flag --%s should not be negative", flag))
	}
	return v
}

func getFlagFloat64(cmd *cobra.Command, flag string) float64 {
	v, err := cmd.Flags().GetFloat64(flag)
	checkError(err)
	return v
}

func getFlagUint64(cmd *cobra.Command, flag string) uint64 {
	v, err := cmd.Flags().GetUint64(flag)
	checkError(err)
	return v
}

func isStdin(file string) bool  { return file == "-" }
func isStdout(file string) bool { return file == "-" }

// getFileListFromArgsAndFile resolves the input file list for a
// subcommand: the --infile-list file (one path per line), when given,
// replaces the positional args; otherwise the positional args are used.
// When neither yields a file, stdin ("-") is used if allowStdin is true
// and it is an error otherwise. When checkExist is true every resolved
// path (besides "-") must exist on disk.
func getFileListFromArgsAndFile(cmd *cobra.Command, args []string, checkExist bool, listFlag string, allowStdin bool) []string {
	files := append([]string{}, args...)

	if listFlag != "" {
		if listFile := getFlagString(cmd, listFlag); listFile != "" {
			fh, err := os.Open(listFile)
			checkError(err)
			defer fh.Close()

			files = files[:0]
			scanner := bufio.NewScanner(fh)
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}
				files = append(files, line)
			}
			checkError(scanner.Err())
		}
	}

	sort.Slice(files, func(i, j int) bool { return natsort.Compare(files[i], files[j]) })

	if len(files) == 0 {
		if !allowStdin {
			checkError(fmt.Errorf("input file(s) needed"))
		}
		files = []string{"-"}
	}

	if checkExist {
		for _, file := range files {
			if isStdin(file) {
				continue
			}
			ok, err := pathutil.Exists(file)
			checkError(err)
			if !ok {
				checkError(fmt.Errorf("file does not exist: %s", file))
			}
		}
	}

	return files
}
