// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/internal/pcm"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading aiff data: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()
	if dec.Format() == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	return pcm.NewSource(dec, int(dec.BitDepth))
}

// Write encodes buf as integer PCM of bitDepth bits. Samples outside [-1, 1]
// are clipped.
func Write(ws io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	if err := pcm.CheckBitDepth(bitDepth); err != nil {
		return err
	}

	enc := aiff.NewEncoder(ws, buf.SampleRate(), bitDepth, buf.NumberOfChannels())
	if err := enc.Write(pcm.IntBuffer(buf, bitDepth)); err != nil {
		return fmt.Errorf("writing aiff data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing aiff file: %w", err)
	}
	return nil
}
