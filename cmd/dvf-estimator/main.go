// Package main is the entry point for the dvf-estimator.
package main

import (
	"os"

	"github.com/donaldgifford/dvf-estimator/cmd/dvf-estimator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
