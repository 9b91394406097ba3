package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const bytesPerSample = 4

// RawReader reads interleaved little-endian float32 frames.
type RawReader struct {
	r        io.Reader
	channels int
	buf      []byte
}

// NewRawReader creates a reader for frames of the given channel count.
func NewRawReader(r io.Reader, channels int) *RawReader {
	return &RawReader{r: r, channels: channels}
}

// Read fills dst with whole frames and returns the number of samples read.
// A stream ending inside a frame drops the partial frame. At the end of the
// stream Read returns 0, io.EOF.
func (r *RawReader) Read(dst []float32) (int, error) {
	want := len(dst) - len(dst)%r.channels
	if want == 0 {
		return 0, nil
	}
	if cap(r.buf) < want*bytesPerSample {
		r.buf = make([]byte, want*bytesPerSample)
	}
	buf := r.buf[:want*bytesPerSample]

	n, err := io.ReadFull(r.r, buf)
	switch {
	case errors.Is(err, io.EOF):
		return 0, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		err = nil
	case err != nil:
		return 0, fmt.Errorf("read pcm: %w", err)
	}

	samples := n / bytesPerSample
	samples -= samples % r.channels
	for i := 0; i < samples; i++ {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerSample:]))
	}
	if samples == 0 {
		return 0, io.EOF
	}
	return samples, err
}

// RawWriter writes interleaved little-endian float32 samples.
type RawWriter struct {
	w   io.Writer
	buf []byte
}

// NewRawWriter creates a writer.
func NewRawWriter(w io.Writer) *RawWriter {
	return &RawWriter{w: w}
}

// Write encodes and writes every sample in src.
func (w *RawWriter) Write(src []float32) error {
	size := len(src) * bytesPerSample
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	buf := w.buf[:size]
	for i, x := range src {
		binary.LittleEndian.PutUint32(buf[i*bytesPerSample:], math.Float32bits(x))
	}
	if _, err := w.w.Write(buf); err != nil {
		return fmt.Errorf("write pcm: %w", err)
	}
	return nil
}
