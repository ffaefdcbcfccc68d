// Squeezeyard turns plain English commands into Logitech Media Server
// requests and answers with a one-sentence confirmation.
//
// Usage:
//
//	squeezeyard serve --config /path/to/squeezeyard.yaml
//	squeezeyard ask play some jazz in the kitchen
//	squeezeyard mcp
//
//	@title			squeezeyard API
//	@version		1.0
//	@description	Natural-language command interface for Logitech Media Server players.
//	@BasePath		/
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
