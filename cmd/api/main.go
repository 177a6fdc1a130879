package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "afritrim-api",
	Short: "Barbershop marketplace API: bookings, billing, reviews and user roles.",
}

func main() {
	serve := newServeCommand()

	rootCmd.RunE = serve.RunE
	rootCmd.Flags().AddFlagSet(serve.Flags())
	rootCmd.AddCommand(serve, newMigrateCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
