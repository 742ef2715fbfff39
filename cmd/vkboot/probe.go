// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
)

func newProbeCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report the layers and physical devices exposed by the driver",
		Example: "  vkboot probe\n" +
			"  vkboot probe --out report.json.lz4",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return probe(cmd.OutOrStdout(), opts, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to a file, lz4 compressed if it ends in .lz4")
	return cmd
}

// probe creates a windowless instance and reports what the driver exposes
func probe(stdout io.Writer, opts *options, out string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	bootstrapConfig, err := cfg.BootstrapConfig()
	if err != nil {
		return err
	}

	driver := device.NewVulkan()
	if err := driver.Load(nil); err != nil {
		return errors.WithMessage(core.ErrDriverLoad, err.Error())
	}

	registry := core.NewLayerRegistry(driver)
	layers, err := registry.Available()
	if err != nil {
		return err
	}

	instance, err := core.NewInstanceFactory(driver, registry).CreateInstance(
		bootstrapConfig.Application, nil, bootstrapConfig.EnableDiagnostics, bootstrapConfig.Layers())
	if err != nil {
		return err
	}
	defer driver.DestroyInstance(instance)

	report := device.Report{Layers: layers}
	candidates, err := core.NewDeviceSelector(driver).Candidates(instance)
	switch {
	case errors.Is(err, core.ErrNoSuitableHardware):
		log.Warn("No physical devices reported")
	case err != nil:
		return err
	}
	for _, candidate := range candidates {
		info := driver.DeviceInfo(candidate)
		log.WithField("device", info).Debug("Physical device found")
		report.Devices = append(report.Devices, info)
	}

	if out == "" {
		return device.WriteReport(stdout, report, false)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := device.WriteReport(f, report, strings.EqualFold(filepath.Ext(out), ".lz4")); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
