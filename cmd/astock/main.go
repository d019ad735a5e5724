package main

import (
	"os"

	"astock/internal/promptctl"
)

// Version is injected by build scripts via -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	os.Exit(promptctl.Run(os.Args[1:], Version))
}
