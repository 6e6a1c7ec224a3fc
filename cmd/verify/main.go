// Package main verifies a revealed flip offline.
//
// Anyone holding the revealed secret can recompute the commitment, digest,
// and outcome without talking to the service.
package main

import (
	"flag"
	"os"

	verifycmd "github.com/louisbranch/fairflip/internal/cmd/verify"
	"github.com/louisbranch/fairflip/internal/platform/config"
)

func main() {
	cfg, err := verifycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := verifycmd.Run(os.Stdout, cfg); err != nil {
		config.Exitf("%v", err)
	}
}
