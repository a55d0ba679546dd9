// Package main is the entry point for the docdepot-cli application.
// It initializes the root command and registers the document, token and
// user sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/tna76874/docdepot/cmd/docdepot-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "docdepot-cli",
		Short: "Document deposition CLI tool",
		Long: `docdepot-cli deposits documents on a DocDepot server and manages
their access tokens and owners.

The server is selected via the following environment variables, which may
also live in a .env file in the working directory:
- DOCDEPOT_HOST (defaults to http://localhost:5000)
- DOCDEPOT_API_KEY or DOCDEPOT_API_KEY_FILE

Every command verifies the server protocol version before acting.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	// Execute root command ONCE after all commands are registered
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	// Register document commands
	if err := commands.InitDocumentCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize document commands: %w", err)
	}

	// Register token commands
	if err := commands.InitTokenCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize token commands: %w", err)
	}

	// Register user commands
	if err := commands.InitUserCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize user commands: %w", err)
	}

	// Register the version command
	if err := commands.InitVersionCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize version command: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	// Set log flags for better error messages
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	// Ensure proper exit codes on errors
	log.SetOutput(os.Stderr)
}
