// Command tutor is the course-support chatbot.
package main

import (
	"os"

	"github.com/custodia-labs/tutor/internal/adapters/driving/cli"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
