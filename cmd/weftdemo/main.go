package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weftdemo",
		Short: "Demo applications for the weft reactive runtime",
		Long: `weftdemo runs small applications built on the weft runtime.

  • serve — serve the counter app over websocket with metrics
  • count — drive the counter app headless and print the result`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		countCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
