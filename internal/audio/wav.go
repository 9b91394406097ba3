// Package audio reads and writes the sample streams the command line tool
// renders: WAV files and raw little-endian float32 PCM.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"

	"github.com/justyntemme/intensifier/pkg/dsp"
)

// ErrInvalidWAV is returned for files the decoder cannot read.
var ErrInvalidWAV = errors.New("invalid wav file")

// BitDepth is the sample size written by WriteWAV.
const BitDepth = 16

// Clip is a planar block of audio.
type Clip struct {
	SampleRate int
	Channels   [][]float32
}

// NewClip allocates a silent clip.
func NewClip(sampleRate, channels, frames int) *Clip {
	c := &Clip{SampleRate: sampleRate, Channels: make([][]float32, channels)}
	for ch := range c.Channels {
		c.Channels[ch] = make([]float32, frames)
	}
	return c
}

// FromInterleaved splits interleaved samples into a clip. A trailing partial
// frame is dropped.
func FromInterleaved(data []float32, channels, sampleRate int) *Clip {
	c := NewClip(sampleRate, channels, len(data)/channels)
	dsp.Deinterleave(c.Channels, data[:c.Frames()*channels])
	return c
}

// NumChannels returns the channel count.
func (c *Clip) NumChannels() int {
	return len(c.Channels)
}

// Frames returns the length of the clip in frames.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Seconds returns the clip duration.
func (c *Clip) Seconds() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.Frames()) / float64(c.SampleRate)
}

// Interleaved returns the samples frame by frame.
func (c *Clip) Interleaved() []float32 {
	out := make([]float32, c.Frames()*c.NumChannels())
	dsp.Interleave(out, c.Channels, c.Frames())
	return out
}

// Stats summarizes the clip level across all channels.
type Stats struct {
	Peak      float32
	RMS       float32
	NonFinite int
}

// Stats returns peak and RMS level over every channel and counts non-finite
// samples. It does not modify the clip.
func (c *Clip) Stats() Stats {
	var s Stats
	var sum float64
	var n int
	for _, samples := range c.Channels {
		for _, x := range samples {
			if !dsp.IsFinite(x) {
				s.NonFinite++
				continue
			}
			if a := float32(math.Abs(float64(x))); a > s.Peak {
				s.Peak = a
			}
			sum += float64(x) * float64(x)
			n++
		}
	}
	if n > 0 {
		s.RMS = float32(math.Sqrt(sum / float64(n)))
	}
	return s
}

// ReadWAV decodes a WAV file into a planar clip with samples in [-1, 1].
func ReadWAV(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("%w: %s has no audio format", ErrInvalidWAV, path)
	}
	if buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s has sample rate %d", ErrInvalidWAV, path, buf.Format.SampleRate)
	}

	return FromInterleaved(buf.Data, buf.Format.NumChannels, buf.Format.SampleRate), nil
}

// WriteWAV encodes the clip as 16-bit PCM, creating parent directories as
// needed.
func WriteWAV(path string, c *Clip) error {
	if c.NumChannels() == 0 || c.SampleRate <= 0 {
		return fmt.Errorf("write wav: empty clip (%d channels @ %d Hz)", c.NumChannels(), c.SampleRate)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, c.SampleRate, BitDepth, c.NumChannels(), 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  c.SampleRate,
			NumChannels: c.NumChannels(),
		},
		Data:           c.Interleaved(),
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}
