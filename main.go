package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bhc",
	Short: "Bristol House Clearances quote service",
	Long: `bhc serves the quote wizard API (pricing, distance, submission and contact endpoints)
and drives the quote wizard from the command line.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(estimateCmd())
	rootCmd.AddCommand(quoteCmd())
}

// loadDotEnv loads .env in development. In production, variables should be set directly.
func loadDotEnv() {
	if os.Getenv("ENV") == "production" {
		return
	}

	// Use Overload to ensure .env values override system environment variables
	envPath := ".env"
	if err := godotenv.Overload(envPath); err != nil {
		log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		return
	}
	log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
}

func main() {
	loadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
