// SPDX-License-Identifier: EPL-2.0

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/wavedit/playout"
	"github.com/ik5/wavedit/track"
)

func newPlayCmd(a *app) *cobra.Command {
	var start, end float64

	cmd := &cobra.Command{
		Use:   "play <session>",
		Short: "Play a session on the default output device.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, s, err := a.loadPlaylist(args[0])
			if err != nil {
				return err
			}

			live, err := playout.NewLiveContext(s.SampleRate, a.cfg.Channels, a.logger)
			if err != nil {
				return err
			}
			if err := pl.SetPlayout(live); err != nil {
				return err
			}

			var opts []track.PlayOption
			if end > 0 {
				opts = append(opts, track.Until(end))
			}

			done, err := pl.Play(live.CurrentTime(), start, opts...)
			if err != nil {
				return err
			}

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigs)

			select {
			case <-done:
				a.logger.Info("playback finished")
			case sig := <-sigs:
				a.logger.Info("stopping playback", zap.String("signal", sig.String()))
				pl.Stop(live.CurrentTime())
				<-done
			case <-cmd.Context().Done():
				pl.Stop(live.CurrentTime())
				<-done
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&start, "start", 0, "timeline position to play from, in seconds")
	cmd.Flags().Float64Var(&end, "end", 0, "timeline position to stop at (default play to the end)")
	return cmd
}
