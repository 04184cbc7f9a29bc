// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ik5/wavedit/session"
	"github.com/ik5/wavedit/track"
)

type trackInfo struct {
	track.Details `yaml:",inline"`
	// Pixels is the waveform width at the configured samples per pixel.
	Pixels int `yaml:"pixels,omitempty"`
}

type sessionInfo struct {
	SampleRate int         `yaml:"sample_rate"`
	MasterGain float64     `yaml:"master_gain"`
	Duration   float64     `yaml:"duration"`
	Formats    []string    `yaml:"formats"`
	Tracks     []trackInfo `yaml:"tracks"`
}

func newInfoCmd(a *app) *cobra.Command {
	var withPeaks bool

	cmd := &cobra.Command{
		Use:   "info <session>",
		Short: "Print the tracks of a session as placed on the timeline.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, s, err := a.loadPlaylist(args[0])
			if err != nil {
				return err
			}

			info := sessionInfo{
				SampleRate: s.SampleRate,
				MasterGain: pl.MasterGain(),
				Duration:   pl.Duration(),
				Formats:    session.DefaultRegistry().Formats(),
			}
			for _, t := range pl.Tracks() {
				ti := trackInfo{Details: t.Details()}
				if withPeaks {
					if err := t.CalculatePeaks(a.cfg.SamplesPerPixel, s.SampleRate); err != nil {
						return err
					}
					ti.Pixels = t.Peaks().Length
				}
				info.Tracks = append(info.Tracks, ti)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(info); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&withPeaks, "peaks", false, "compute waveform peaks and report their width")
	return cmd
}
