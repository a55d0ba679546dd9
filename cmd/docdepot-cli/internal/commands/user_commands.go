package commands

import (
	"fmt"

	"github.com/tna76874/docdepot/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// UserCommandHandler encapsulates logic for administrative user operations via CLI.
type UserCommandHandler struct {
	client *Client
	logger logger.Logger
}

// NewUserCommandHandler initializes and returns a UserCommandHandler
// instance with configured logger and server client.
func NewUserCommandHandler() (*UserCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	client, err := NewClientFromEnv(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &UserCommandHandler{
		client: client,
		logger: loggerInstance,
	}, nil
}

// DeleteUserCmd removes a user with all documents, tokens and events.
func (commandHandler *UserCommandHandler) DeleteUserCmd(cmd *cobra.Command, _ []string) {
	uid, err := cmd.Flags().GetString("uid")
	if err != nil {
		commandHandler.logger.Error("invalid uid flag ", err)
		return
	}

	if err := commandHandler.client.CheckVersion(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := commandHandler.client.DeleteUser(cmd.Context(), uid); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Deleted user ", uid)
}

// AverageTimesCmd prints the per-user average response times.
func (commandHandler *UserCommandHandler) AverageTimesCmd(cmd *cobra.Command, _ []string) {
	if err := commandHandler.client.CheckVersion(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	averages, err := commandHandler.client.AverageTimes(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for uid, seconds := range averages {
		if seconds == nil {
			commandHandler.logger.Info(uid, " no accesses yet")
			continue
		}
		commandHandler.logger.Info(uid, " ", *seconds, "s")
	}
}

// InitUserCommands registers user-related commands
func InitUserCommands(rootCmd *cobra.Command) error {
	handler, err := NewUserCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create user command handler %w", err)
	}

	var deleteUserCmd = &cobra.Command{
		Use:   "delete-user",
		Short: "Delete a user with all documents and tokens",
		Run:   handler.DeleteUserCmd,
	}
	deleteUserCmd.Flags().StringP("uid", "", "", "User id to delete")
	rootCmd.AddCommand(deleteUserCmd)

	var averageTimesCmd = &cobra.Command{
		Use:   "average-times",
		Short: "Show the average response time per user",
		Run:   handler.AverageTimesCmd,
	}
	rootCmd.AddCommand(averageTimesCmd)

	return nil
}
