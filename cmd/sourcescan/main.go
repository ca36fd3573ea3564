package main

import (
	"os"

	"github.com/edhofdc/sourcecode-scanner/internal/app"
)

func main() {
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
