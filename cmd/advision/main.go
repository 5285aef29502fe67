package main

import (
	"os"

	"github.com/NotSooShariff/adversarial-vision/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
