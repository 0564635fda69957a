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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/shenwei356/neotype/neotype"
)

// outStream opens file for writing ("-" for stdout), optionally wrapping
// it in a gzip writer.
func outStream(file string, gzipped bool) (*bufio.Writer, io.WriteCloser, *os.File, error) {
	var w *os.File
	var err error
	if isStdout(file) {
		w = os.Stdout
	} else {
		w, err = os.Create(file)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("fail to write %s: %s", file, err)
		}
	}

	if gzipped {
		gw := gzip.NewWriter(w)
		return bufio.NewWriterSize(gw, os.Getpagesize()), gw, w, nil
	}
	return bufio.NewWriterSize(w, os.Getpagesize()), nil, w, nil
}

// inStream opens file for reading ("-" for stdin), transparently
// decompressing it if it's gzipped.
func inStream(file string) (*bufio.Reader, *os.File, bool, error) {
	var r *os.File
	var err error
	if isStdin(file) {
		if !detectStdin() {
			return nil, nil, false, errors.New("stdin not detected")
		}
		r = os.Stdin
	} else {
		r, err = os.Open(file)
		if err != nil {
			return nil, nil, false, fmt.Errorf("fail to read %s: %s", file, err)
		}
	}

	br := bufio.NewReaderSize(r, os.Getpagesize())

	gzipped, err := isGzip(br)
	if err != nil {
		return nil, nil, false, fmt.Errorf("fail to check is file (%s) gzipped: %s", file, err)
	}
	if gzipped {
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, r, true, fmt.Errorf("fail to create gzip reader for %s: %s", file, err)
		}
		br = bufio.NewReaderSize(gr, os.Getpagesize())
	}

	return br, r, gzipped, nil
}

func isGzip(b *bufio.Reader) (bool, error) {
	magic, err := b.Peek(2)
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	return magic[0] == 0x1f && magic[1] == 0x8b, nil
}

func detectStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readSketchFile opens and deserialises a single sketch file, transparently
// decompressing it if it's gzipped. The file's extension must match the
// kind recorded in its header.
func readSketchFile(file string) (*neotype.Sketch, error) {
	ext := strings.TrimSuffix(file, ".gz")
	wantKind, err := neotype.KindForExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", file, err)
	}

	br, r, _, err := inStream(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	sk, err := neotype.ReadSketch(br)
	if err != nil {
		return nil, err
	}
	if sk.Params.Kind != wantKind {
		return nil, fmt.Errorf("%s: extension implies %s but header records a different sketch kind", file, ext)
	}
	return sk, nil
}

// readSketchFiles loads every file in order into a reference collection.
func readSketchFiles(files []string) ([]*neotype.Sketch, error) {
	sketches := make([]*neotype.Sketch, len(files))
	for i, file := range files {
		sk, err := readSketchFile(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %s", file, err)
		}
		sketches[i] = sk
	}
	return sketches, nil
}
