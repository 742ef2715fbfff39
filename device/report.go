// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"encoding/json"
	"io"

	"github.com/pierrec/lz4"
	"github.com/pkg/errors"

	"github.com/devblok/vkboot/core"
)

// Report is a snapshot of what the driver exposes on this machine
type Report struct {
	Layers  []core.LayerName     `json:"layers"`
	Devices []PhysicalDeviceInfo `json:"devices"`
}

// WriteReport encodes the report as indented JSON,
// lz4 compressed if compress is set.
func WriteReport(w io.Writer, report Report, compress bool) error {
	if !compress {
		return encodeReport(w, report)
	}

	zw := lz4.NewWriter(w)
	if err := encodeReport(zw, report); err != nil {
		return err
	}
	return errors.Wrap(zw.Close(), "lz4")
}

// ReadReport decodes a report written by WriteReport.
func ReadReport(r io.Reader, compressed bool) (Report, error) {
	if compressed {
		r = lz4.NewReader(r)
	}

	var report Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return Report{}, errors.Wrap(err, "decode report")
	}
	return report, nil
}

func encodeReport(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encode report")
}
