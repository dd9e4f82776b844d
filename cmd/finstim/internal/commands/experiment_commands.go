package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"finstim/display"
	"finstim/experiment"
	"finstim/internal/api"
	v1 "finstim/internal/api/v1"
	"finstim/internal/config"
	"finstim/internal/logger"
	"finstim/internal/metrics"
)

// InitExperimentCommands registers the protocol runner command.
func InitExperimentCommands(rootCmd *cobra.Command) {
	experimentCmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run a timed protocol from a file",
		Long: `Run a protocol file: a stimulus bank plus a timed sequence with
baseline phases between stimuli. Every presented epoch is recorded.

With --input the sequence timing is ignored and the presented stimulus
follows external input instead: digit keys and position reports posted
to the control API.`,
		RunE: runExperiment,
	}
	experimentCmd.Flags().String("protocol", "", "Path to protocol file (YAML or JSON)")
	experimentCmd.Flags().Bool("input", false, "Switch stimuli on input instead of the timed sequence")
	experimentCmd.Flags().Bool("dry-run", false, "Drive the protocol without opening a window")
	_ = experimentCmd.MarkFlagRequired("protocol")
	rootCmd.AddCommand(experimentCmd)
}

// openLoopController exposes a timed run to the API read-only.
type openLoopController struct {
	runner *experiment.Runner
}

func (c openLoopController) SetPosition(experiment.Position) error {
	return fmt.Errorf("timed protocol does not take position input")
}

func (c openLoopController) Status() experiment.Status { return c.runner.Status() }

func runExperiment(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	protocolPath, err := cmd.Flags().GetString("protocol")
	if err != nil {
		return err
	}
	inputMode, err := cmd.Flags().GetBool("input")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	// An input-driven session only ends on operator input, which a
	// windowless run can never deliver.
	if inputMode && dryRun {
		return fmt.Errorf("--dry-run cannot be combined with --input")
	}

	protocol, err := experiment.LoadProtocol(protocolPath)
	if err != nil {
		return err
	}
	bank, params, timeline, err := protocol.Build(cfg.Texture.Size)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	rec, sessions, events, cleanup, err := recorderStack(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	var app display.App
	var controller v1.ExperimentController

	if inputMode {
		exp, err := experiment.NewInputExperiment(experiment.InputConfig{
			Bank:     bank,
			Params:   params,
			Recorder: rec,
			Logger:   log,
			Metrics:  m,
		})
		if err != nil {
			return err
		}
		app, controller = exp, exp
	} else {
		runner, err := experiment.NewRunner(experiment.RunnerConfig{
			Timeline: timeline,
			Bank:     bank,
			Params:   params,
			Recorder: rec,
			Logger:   log,
			Metrics:  m,
			Protocol: protocol.Name,
			Profile:  true,
		})
		if err != nil {
			return err
		}
		app, controller = runner, openLoopController{runner}
	}

	if cfg.API.Enabled {
		server, err := api.NewServer(api.ServerConfig{
			Port:       cfg.API.Port,
			Controller: controller,
			Events:     events,
			Sessions:   sessions,
			Metrics:    m,
			Registry:   registry,
			Logger:     log,
		})
		if err != nil {
			return err
		}
		server.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				log.Warn(err)
			}
		}()
	}

	if dryRun {
		return display.RunHeadless(app, displayOptions(cfg), 0)
	}
	return display.RunApp(app, displayOptions(cfg))
}

// recorderStack builds the configured recorders and, when the
// database is enabled, the repositories the API serves from.
func recorderStack(cfg *config.Config, log logger.Logger) (experiment.Recorder, experiment.SessionRepository, experiment.EventRepository, func(), error) {
	var recs []experiment.Recorder
	var sessions experiment.SessionRepository
	var events experiment.EventRepository
	cleanup := func() {}

	if cfg.Recording.Enabled {
		jr, err := experiment.NewSessionDirRecorder(cfg.Recording.Dir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		recs = append(recs, jr)
	}

	if cfg.Database.Enabled {
		dbRec, s, e, dbCleanup, err := openDatabase(cfg, log)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		recs = append(recs, dbRec)
		sessions, events = s, e
		cleanup = dbCleanup
	}

	var rec experiment.Recorder
	switch len(recs) {
	case 0:
		rec = experiment.NopRecorder{}
	case 1:
		rec = recs[0]
	default:
		rec = experiment.MultiRecorder(recs)
	}
	return rec, sessions, events, cleanup, nil
}
