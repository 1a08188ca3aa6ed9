// +build noterm

package main

import (
	"github.com/pkg/errors"

	"dscheirer.com/bcdsegment/ca3161"
)

func init() {
	features = append(features, "noterm")
}

func openTermPort(layout ca3161.Layout, comms commChannels) (hwPort, error) {
	return nil, errors.New("built without terminal support (noterm)")
}
