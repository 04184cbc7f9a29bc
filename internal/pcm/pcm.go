// SPDX-License-Identifier: EPL-2.0

// Package pcm bridges go-audio integer PCM and the float buffers used by the
// rest of the module. The wav and aiff formats share it.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/utils"
)

var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// CheckBitDepth reports whether bitDepth is one of 16, 24 or 32.
func CheckBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
}

// ReadSeeker returns r itself when it can seek, otherwise r read into memory.
// The go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Source streams a go-audio decoder as normalised float samples.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	scale      float32
	intBuf     *goaudio.IntBuffer
}

func NewSource(dec Reader, bitDepth int) (*Source, error) {
	if err := CheckBitDepth(bitDepth); err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: missing or empty format", audio.ErrInvalidFormat)
	}

	return &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      float32(int64(1) << (bitDepth - 1)),
	}, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]) / s.scale
	}

	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}

// IntBuffer interleaves buf into integer PCM of bitDepth bits.
func IntBuffer(buf *audio.Buffer, bitDepth int) *goaudio.IntBuffer {
	channels := buf.NumberOfChannels()
	data := make([]int, buf.Length()*channels)

	for c := range channels {
		samples := buf.ChannelData(c)
		for f, s := range samples {
			data[f*channels+c] = utils.FloatToPCM(s, bitDepth)
		}
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  buf.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
}
