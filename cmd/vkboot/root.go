// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/devblok/vkboot/config"
	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	"github.com/devblok/vkboot/platform"
)

type options struct {
	configPath string
	logLevel   string
	platform   string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "vkboot",
		Short:         "Open a window and bootstrap a Vulkan instance for it",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setLogLevel(opts.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "configuration file (.yaml, .toml or .json)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	flags.BoolVar(&opts.debug, "debug", false, "enable the configured validation layers")
	root.Flags().StringVar(&opts.platform, "platform", "", "windowing platform, one of sdl|glfw")

	root.AddCommand(newProbeCmd(opts))
	return root
}

func setLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}

// loadConfig layers defaults, the config file, the environment
// and finally the command line flags.
func loadConfig(opts *options) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if opts.configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(opts.configPath)
	}
	if err != nil {
		return cfg, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if opts.platform != "" {
		cfg.Platform = opts.platform
	}
	if opts.debug {
		cfg.Diagnostics.Enabled = true
	}
	return cfg, nil
}

func run(ctx context.Context, opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log.WithField("config", cfg).Debug("Configuration loaded")

	bootstrapConfig, err := cfg.BootstrapConfig()
	if err != nil {
		return err
	}

	windowing, err := platform.New(cfg.Platform)
	if err != nil {
		return err
	}

	vkContext, err := core.NewContext(bootstrapConfig, windowing, device.NewVulkan(),
		core.WithLogger(log.StandardLogger()))
	if err != nil {
		return err
	}
	if err := vkContext.Bootstrap(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return vkContext.Run(ctx)
}
