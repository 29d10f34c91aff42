// Package main is the entry point for the dvfe CLI client.
package main

import (
	"github.com/donaldgifford/dvf-estimator/cmd/dvfe/cmd"
)

func main() {
	cmd.Execute()
}
