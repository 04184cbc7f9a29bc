// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/wavedit/audio"
	"github.com/ik5/wavedit/formats/aiff"
	"github.com/ik5/wavedit/formats/wav"
)

type renderOptions struct {
	output   string
	start    float64
	end      float64
	bits     int
	channels int
}

func newRenderCmd(a *app) *cobra.Command {
	o := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <session>",
		Short: "Mix a session down to a WAV or AIFF file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, err := writerFor(o.output)
			if err != nil {
				return err
			}

			pl, s, err := a.loadPlaylist(args[0])
			if err != nil {
				return err
			}

			channels := o.channels
			if channels == 0 {
				channels = a.cfg.Channels
			}

			end := o.end
			if end <= 0 {
				end = pl.Duration()
			}

			buf, err := pl.Mixdown(cmd.Context(), o.start, end, channels, s.SampleRate)
			if err != nil {
				return err
			}

			f, err := os.Create(o.output)
			if err != nil {
				return err
			}
			if err := write(f, buf, o.bits); err != nil {
				f.Close()
				return fmt.Errorf("%s: %w", o.output, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			a.logger.Info("rendered",
				zap.String("output", o.output),
				zap.Float64("start", o.start),
				zap.Float64("end", end),
				zap.Int("frames", buf.Length()),
				zap.Int("bits", o.bits))
			return nil
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file, .wav or .aiff")
	cmd.Flags().Float64Var(&o.start, "start", 0, "timeline position to render from, in seconds")
	cmd.Flags().Float64Var(&o.end, "end", 0, "timeline position to render to (default the session end)")
	cmd.Flags().IntVar(&o.bits, "bits", 16, "PCM bit depth: 16, 24 or 32")
	cmd.Flags().IntVar(&o.channels, "channels", 0, "output channels (default WAVEDIT_CHANNELS)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

type writeFunc func(f *os.File, buf *audio.Buffer, bits int) error

func writerFor(path string) (writeFunc, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return func(f *os.File, buf *audio.Buffer, bits int) error { return wav.Write(f, buf, bits) }, nil
	case ".aif", ".aiff":
		return func(f *os.File, buf *audio.Buffer, bits int) error { return aiff.Write(f, buf, bits) }, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", filepath.Ext(path))
}
