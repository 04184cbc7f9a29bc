// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/internal/pcm"
)

// Write encodes buf as integer PCM of bitDepth bits. Samples outside [-1, 1]
// are clipped. ws is left positioned at the end of the file.
func Write(ws io.WriteSeeker, buf *audio.Buffer, bitDepth int) error {
	if err := pcm.CheckBitDepth(bitDepth); err != nil {
		return err
	}

	enc := wav.NewEncoder(ws, buf.SampleRate(), bitDepth, buf.NumberOfChannels(), formatPCM)
	if err := enc.Write(pcm.IntBuffer(buf, bitDepth)); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav file: %w", err)
	}
	return nil
}
