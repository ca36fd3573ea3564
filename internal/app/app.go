package app

import (
	"github.com/spf13/cobra"

	"github.com/edhofdc/sourcecode-scanner/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "sourcescan", Short: "Scan a website's source files for vulnerabilities, weak dependencies, and leaked secrets"}
	cli.AddCommands(root)
	return root
}
