// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/wavedit"
	"github.com/ik5/wavedit/config"
	"github.com/ik5/wavedit/logger"
	"github.com/ik5/wavedit/session"
	"github.com/ik5/wavedit/track"
)

// app is the state shared by every subcommand once the root pre-run is done.
type app struct {
	envFile  string
	logLevel string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "wavedit",
		Short:         "Inspect, render and play multitrack session files.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env", "", "dotenv file to load (default ./.env)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override WAVEDIT_LOG_LEVEL")

	root.AddCommand(
		newInfoCmd(a),
		newRenderCmd(a),
		newPlayCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	a.cfg = config.Load(files...)

	level := a.cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}

	log, err := logger.New(logger.Config{
		Level:      logger.LogLevel(level),
		Console:    cmd.ErrOrStderr(),
		OutputPath: a.cfg.LogFile,
		MaxSize:    a.cfg.LogMaxSize,
		MaxBackups: a.cfg.LogMaxBackups,
		MaxAge:     a.cfg.LogMaxAge,
		Compress:   true,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.logger = log

	if !a.cfg.DotEnv {
		a.logger.Debug("no .env file loaded, using the environment only")
	}
	return nil
}

// loadPlaylist builds the tracks of the session at path into a playlist.
// Sessions without a sample rate are resampled to the configured one.
func (a *app) loadPlaylist(path string) (*wavedit.Playlist, *session.Session, error) {
	s, err := session.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if s.SampleRate == 0 {
		s.SampleRate = a.cfg.SampleRate
	}

	tracks, err := s.Build(session.DefaultRegistry(),
		session.WithDefaultShape(a.cfg.FadeShape),
		session.WithLogger(a.logger),
		session.WithTrackOptions(
			track.WithLogger(a.logger),
			track.WithEnabledStates(a.cfg.EnabledStates()),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	pl := wavedit.New(wavedit.WithLogger(a.logger), wavedit.WithMasterGain(s.Master()))
	for _, t := range tracks {
		pl.Add(t)
	}

	a.logger.Info("session loaded",
		zap.String("path", path),
		zap.Int("tracks", len(tracks)),
		zap.Int("sample_rate", s.SampleRate),
		zap.Float64("duration", pl.Duration()))

	return pl, s, nil
}
