// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package rng

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// StreamName identifies recorded entropy streams in reports.
const StreamName = "STREAM"

// wordLen is the number of bytes consumed per draw.
const wordLen = 8

var gzipMagic = []byte{0x1f, 0x8b}

// Stream draws from a finite recording of external entropy (beacon pulses,
// hardware or quantum output), plain or gzip compressed. Each draw consumes
// eight bytes; at the end of the recording the source is exhausted.
type Stream struct {
	src    io.ReadSeeker
	closer io.Closer
	gz     bool
	reader *bufio.Reader
	dec    io.Closer // gzip decoder of the current pass
	words  uint64    // whole words in the recording, counted on first Seed
	sized  bool
	offset uint64    // bytes consumed from the decoded stream
}

// NewFileStream opens a recorded entropy file.
func NewFileStream(filename string) (*Stream, error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat file: %s, does it exist?", filename)
	}
	if stat.IsDir() {
		return nil, errors.New("given path to entropy file is a directory")
	}
	if stat.Size() == 0 {
		return nil, errors.New("given entropy file is empty")
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open entropy file: %s", filename)
	}
	s, err := newStream(file, file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return s, nil
}

// NewByteStream creates a stream over an in-memory recording.
func NewByteStream(data []byte) (*Stream, error) {
	return newStream(bytes.NewReader(data), nil)
}

func newStream(src io.ReadSeeker, closer io.Closer) (*Stream, error) {
	head := make([]byte, len(gzipMagic))
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "cannot read entropy stream header")
	}
	s := &Stream{
		src:    src,
		closer: closer,
		gz:     n == len(gzipMagic) && bytes.Equal(head, gzipMagic),
	}
	if err := s.rewind(); err != nil {
		return nil, err
	}
	return s, nil
}

// rewind restarts decoding at the beginning of the recording.
func (s *Stream) rewind() error {
	if _, err := s.src.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "cannot rewind entropy stream")
	}
	if s.dec != nil {
		_ = s.dec.Close()
		s.dec = nil
	}
	var r io.Reader = s.src
	if s.gz {
		gz, err := gzip.NewReader(s.src)
		if err != nil {
			return errors.Wrap(err, "could not create gzip reader for entropy stream")
		}
		s.dec = gz
		r = gz
	}
	s.reader = bufio.NewReader(r)
	s.offset = 0
	return nil
}

// skip discards n bytes of decoded data.
func (s *Stream) skip(n uint64) error {
	copied, err := io.CopyN(io.Discard, s.reader, int64(n))
	s.offset += uint64(copied)
	if errors.Is(err, io.EOF) {
		return ErrSourceExhausted
	}
	return err
}

func (s *Stream) word() (uint64, error) {
	var buf [wordLen]byte
	if _, err := io.ReadFull(s.reader, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrSourceExhausted
		}
		return 0, errors.Wrap(err, "cannot read entropy stream")
	}
	s.offset += wordLen
	return binary.BigEndian.Uint64(buf[:]), nil
}

func (s *Stream) Name() string {
	return StreamName
}

// Seed restarts the recording at word seed mod the number of whole words
// it holds, so every seed starts inside the recording and distinct seeds
// read distinct parts of it.
func (s *Stream) Seed(seed uint64) {
	words, err := s.length()
	if err != nil {
		return
	}
	if err = s.rewind(); err != nil || words == 0 {
		return
	}
	_ = s.skip((seed % words) * wordLen)
}

// length returns the number of whole words in the decoded recording.
func (s *Stream) length() (uint64, error) {
	if s.sized {
		return s.words, nil
	}
	if err := s.rewind(); err != nil {
		return 0, err
	}
	n, err := io.Copy(io.Discard, s.reader)
	if err != nil {
		return 0, errors.Wrap(err, "cannot measure entropy stream")
	}
	s.words, s.sized = uint64(n)/wordLen, true
	return s.words, nil
}

func (s *Stream) Uniform() (float64, error) {
	w, err := s.word()
	if err != nil {
		return 0, err
	}
	return toUniform(w), nil
}

// Intn reduces the next word modulo the range width.
func (s *Stream) Intn(low, high int) (int, error) {
	if high <= low {
		return 0, errors.Newf("empty integer range [%d,%d)", low, high)
	}
	w, err := s.word()
	if err != nil {
		return 0, err
	}
	return low + int(w%uint64(high-low)), nil
}

// Offset returns the number of decoded bytes consumed so far.
func (s *Stream) Offset() uint64 {
	return s.offset
}

func (s *Stream) State() State {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, s.offset)
	return State{Generator: StreamName, Data: data}
}

func (s *Stream) SetState(st State) error {
	if err := checkState(st, StreamName); err != nil {
		return err
	}
	if len(st.Data) != 8 {
		return errors.Wrapf(ErrInvalidState, "stream state has %d bytes", len(st.Data))
	}
	if err := s.rewind(); err != nil {
		return err
	}
	return s.skip(binary.BigEndian.Uint64(st.Data))
}

func (s *Stream) JumpAhead(n uint64) error {
	return s.skip(n * wordLen)
}

// Close releases the underlying recording.
func (s *Stream) Close() error {
	var err error
	if s.dec != nil {
		err = s.dec.Close()
	}
	if s.closer != nil {
		err = errors.CombineErrors(err, s.closer.Close())
	}
	return err
}
