// Package main generates CLI reference documentation for the dvf-estimator
// server and the dvfe client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	server "github.com/donaldgifford/dvf-estimator/cmd/dvf-estimator/cmd"
	client "github.com/donaldgifford/dvf-estimator/cmd/dvfe/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated markdown")
	flag.Parse()

	trees := map[string]*cobra.Command{
		"dvf-estimator": server.Root(),
		"dvfe":          client.Root(),
	}

	for name, root := range trees {
		dir := filepath.Join(*output, name)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatalf("creating output directory: %v", err)
		}

		root.DisableAutoGenTag = true
		if err := doc.GenMarkdownTree(root, dir); err != nil {
			log.Fatalf("generating %s docs: %v", name, err)
		}
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}
