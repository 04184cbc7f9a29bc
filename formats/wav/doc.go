// SPDX-License-Identifier: EPL-2.0

// Package wav imports and exports integer PCM WAV files through
// github.com/go-audio/wav.
//
// Decoder plugs into an audio.Registry and streams 16, 24 or 32 bit PCM as
// float samples in [-1, 1]:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//		return err
//	}
//	buf, err := audio.ReadAll(src)
//
// Write goes the other way, from an audio.Buffer to a file:
//
//	out, _ := os.Create("mix.wav")
//	defer out.Close()
//	err := wav.Write(out, buf, 16)
package wav
