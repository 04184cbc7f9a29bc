// SPDX-License-Identifier: EPL-2.0

// Package session reads YAML session files and builds the tracks they
// describe, with their audio loaded and edits applied.
//
//	sample_rate: 44100
//	master_gain: 0.9
//	tracks:
//	  - name: drums
//	    src: drums.wav
//	    start: 1.5
//	    gain: 0.8
//	    pan: -0.2
//	    trim: {start: 2, end: 30}
//	    cuts:
//	      - {start: 10, end: 12}
//	    fade_ins:
//	      - {start: 0, end: 1, shape: sCurve}
//	    fade_out: {length: 3, shape: logarithmic}
//
// Relative src paths are resolved against the session file's directory.
// Edits are applied in the order start, cues, trim, cuts, fades.
package session
