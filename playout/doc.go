// SPDX-License-Identifier: EPL-2.0

// Package playout turns scheduled track parameters into sound.
//
// A Context plays the role of an audio context handle: it creates one
// Backend per track buffer, and every backend created for the same context
// shares the MasterGain passed to it. The track package drives a Backend
// through the calls below, in this order, on every play:
//
//	done := backend.SetUpSource()
//	backend.ApplyFadeIn(at, length, shape)   // zero or more
//	backend.ApplyFadeOut(at, length, shape)  // at most one
//	backend.SetVolumeGainLevel(gain)
//	backend.SetShouldPlay(true)
//	backend.SetMasterGainLevel(1)
//	backend.SetStereoPanValue(pan)
//	backend.Play(when, offset, duration)
//	<-done // closed when the source stops
//
// Times (when, at) are seconds on the context's transport clock; offset is
// seconds into the buffer.
//
// Two contexts are provided. OfflineContext mixes every scheduled source into
// a buffer when Render is called, with transport time 0 at the first frame.
// LiveContext streams sources to the sound card through oto, with transport
// time measured from the moment the context was created.
//
// Fades follow the automation semantics of a gain parameter: a fade-in holds
// unity gain until it starts, a fade-out holds silence after it ends, and a
// fade that started before Play is entered part way through its curve.
package playout
