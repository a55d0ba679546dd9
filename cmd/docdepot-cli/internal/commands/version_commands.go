package commands

import (
	"fmt"

	v1 "github.com/tna76874/docdepot/internal/api/rest/v1"

	"github.com/spf13/cobra"
)

// InitVersionCommands registers the version command
func InitVersionCommands(rootCmd *cobra.Command) error {
	loggerInstance, err := setupLogger()
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show the client protocol version and probe the server",
		Run: func(cmd *cobra.Command, _ []string) {
			loggerInstance.Info("Client protocol version ", v1.ClientProtocolVersion)

			client, err := NewClientFromEnv(loggerInstance)
			if err != nil {
				loggerInstance.Warn("Server not probed: ", err)
				return
			}
			if err := client.CheckVersion(cmd.Context()); err != nil {
				loggerInstance.Error(err)
				return
			}
			loggerInstance.Info("Server protocol version matches")
		},
	}
	rootCmd.AddCommand(versionCmd)

	return nil
}
