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
	"encoding/binary"
	"io"
	"math"
	"path/filepath"
	"strings"
)

// sketchMagic tags a neotype sketch file's binary framing.
var sketchMagic = [8]byte{'.', 'n', 'e', 'o', 's', 'k', 't', 'c'}

// SketchMainVersion/SketchMinorVersion identify the on-disk layout: a
// main version bump means old readers can't parse the file at all, a
// minor bump means they can skip unknown trailing fields.
const (
	SketchMainVersion  uint8 = 1
	SketchMinorVersion uint8 = 0
)

var be = binary.BigEndian

// ExtMSH and ExtFSH are the two recognised sketch file extensions
//.
const (
	ExtMSH = ".msh"
	ExtFSH = ".fsh"
)

// ExtensionFor returns the canonical extension for a sketch's kind.
func ExtensionFor(kind SketchKind) string {
	if kind == Scaled {
		return ExtFSH
	}
	return ExtMSH
}

// KindForExtension dispatches a sketch filename's extension to a
// SketchKind, the only policy the core mandates for sketch files
//. It returns ErrInvalidExtension for anything else.
func KindForExtension(file string) (SketchKind, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ExtMSH:
		return MinHashBottomK, nil
	case ExtFSH:
		return Scaled, nil
	default:
		return 0, ErrInvalidExtension
	}
}

// WriteSketch serialises s to w: magic number, fixed header (version,
// kind, k, seed, sketch_size, scale, seq_length, name), then the sorted
// hash/count payload.
func WriteSketch(w io.Writer, s *Sketch) error {
	if err := binary.Write(w, be, sketchMagic); err != nil {
		return err
	}
	if err := binary.Write(w, be, [2]uint8{SketchMainVersion, SketchMinorVersion}); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint8(s.Params.Kind)); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint8(s.Params.KmerLength)); err != nil {
		return err
	}
	if err := binary.Write(w, be, s.Params.HashSeed); err != nil {
		return err
	}
	if err := binary.Write(w, be, uint64(s.Params.SketchSize)); err != nil {
		return err
	}
	if err := binary.Write(w, be, math.Float64bits(s.Params.Scale)); err != nil {
		return err
	}
	if err := binary.Write(w, be, s.SeqLength); err != nil {
		return err
	}

	nameBytes := []byte(s.Name)
	if err := binary.Write(w, be, uint32(len(nameBytes))); err != nil {
		return err
	}
	if _, err := w.Write(nameBytes); err != nil {
		return err
	}

	if err := binary.Write(w, be, uint64(len(s.Hashes))); err != nil {
		return err
	}
	for _, hk := range s.Hashes {
		if err := binary.Write(w, be, hk.Hash); err != nil {
			return err
		}
		if err := binary.Write(w, be, hk.Count); err != nil {
			return err
		}
	}
	return nil
}

// ReadSketch deserialises a Sketch written by WriteSketch.
func ReadSketch(r io.Reader) (*Sketch, error) {
	var magic [8]byte
	if err := binary.Read(r, be, &magic); err != nil {
		return nil, err
	}
	if magic != sketchMagic {
		return nil, ErrInvalidFileFormat
	}

	var version [2]uint8
	if err := binary.Read(r, be, &version); err != nil {
		return nil, err
	}

	var kind, k uint8
	if err := binary.Read(r, be, &kind); err != nil {
		return nil, err
	}
	if err := binary.Read(r, be, &k); err != nil {
		return nil, err
	}

	s := &Sketch{Params: SketchParams{Kind: SketchKind(kind), KmerLength: int(k)}}

	if err := binary.Read(r, be, &s.Params.HashSeed); err != nil {
		return nil, err
	}
	var sketchSize uint64
	if err := binary.Read(r, be, &sketchSize); err != nil {
		return nil, err
	}
	s.Params.SketchSize = int(sketchSize)

	var scaleBits uint64
	if err := binary.Read(r, be, &scaleBits); err != nil {
		return nil, err
	}
	s.Params.Scale = math.Float64frombits(scaleBits)

	if err := binary.Read(r, be, &s.SeqLength); err != nil {
		return nil, err
	}

	var nameLen uint32
	if err := binary.Read(r, be, &nameLen); err != nil {
		return nil, err
	}
	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return nil, err
	}
	s.Name = string(nameBytes)

	var numHashes uint64
	if err := binary.Read(r, be, &numHashes); err != nil {
		return nil, err
	}
	s.Hashes = make([]HashedKmer, numHashes)
	for i := range s.Hashes {
		if err := binary.Read(r, be, &s.Hashes[i].Hash); err != nil {
			return nil, err
		}
		if err := binary.Read(r, be, &s.Hashes[i].Count); err != nil {
			return nil, err
		}
	}

	return s, nil
}
