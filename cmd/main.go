package main

import (
	"os"

	_ "github.com/muhammadheryan/car-traders/docs"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cartraders",
	Short: "CarTraders car trading marketplace",
	Long: `CarTraders lets users list cars they want to trade and search listings
by location and model. Without a subcommand the HTTP server is started.`,
	SilenceUsage: true,
	RunE:         runServer,
}

// @title CarTraders API
// @version 1.0
// @description Car trading marketplace. Pages render as JSON view documents; sessions travel in the "session" cookie.
// @host localhost:8080
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
