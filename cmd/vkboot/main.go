// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"context"
	"os"
	"runtime"

	log "github.com/sirupsen/logrus"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Error("vkboot failed")
		os.Exit(1)
	}
}
