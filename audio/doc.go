// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoded-PCM primitives the editor works on.
//
// # Buffer
//
// Buffer is the in-memory form of a clip: one float32 slice per channel,
// every channel holding Length() frames at SampleRate() Hz. Samples are in
// [-1.0, 1.0].
//
//	buf, _ := audio.NewBuffer(2, 44100, 44100) // one second of stereo silence
//	left := buf.ChannelData(0)
//
// # Editing
//
// Cut removes a frame range from every channel and returns a new, shorter
// buffer, leaving the input intact so that a caller can keep it for undo:
//
//	shorter, err := audio.Cut(buf, 88200, 176400)
//
// # Conversion
//
// Resample changes the sample rate with cubic interpolation and Mono averages
// all channels into one:
//
//	at48k, _ := audio.Resample(buf, 48000)
//	mono := audio.Mono(buf)
//
// # Sources and decoders
//
// A Source streams interleaved samples; ReadAll turns one into a Buffer.
// Registry keeps the PCM container readers by file extension:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.ForPath("drums.wav")
//
// # Error Handling
//
// Errors wrap the sentinels in this package (ErrInvalidRange,
// ErrInvalidFormat, ErrInvalidDstSize); test them with errors.Is.
package audio
