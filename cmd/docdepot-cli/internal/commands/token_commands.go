package commands

import (
	"fmt"

	"github.com/tna76874/docdepot/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// TokenCommandHandler encapsulates logic for managing access tokens via CLI.
type TokenCommandHandler struct {
	client *Client
	logger logger.Logger
}

// NewTokenCommandHandler initializes and returns a TokenCommandHandler
// instance with configured logger and server client.
func NewTokenCommandHandler() (*TokenCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	client, err := NewClientFromEnv(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &TokenCommandHandler{
		client: client,
		logger: loggerInstance,
	}, nil
}

// GenerateTokenCmd issues an additional token for an existing document.
func (commandHandler *TokenCommandHandler) GenerateTokenCmd(cmd *cobra.Command, _ []string) {
	documentID, err := cmd.Flags().GetString("did")
	if err != nil {
		commandHandler.logger.Error("invalid did flag ", err)
		return
	}

	if err := commandHandler.client.CheckVersion(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	token, err := commandHandler.client.IssueToken(cmd.Context(), documentID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Issued token ", token)
}

// DeleteTokenCmd removes a token and its access events.
func (commandHandler *TokenCommandHandler) DeleteTokenCmd(cmd *cobra.Command, _ []string) {
	value, err := cmd.Flags().GetString("token")
	if err != nil {
		commandHandler.logger.Error("invalid token flag ", err)
		return
	}

	if err := commandHandler.client.CheckVersion(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := commandHandler.client.DeleteToken(cmd.Context(), value); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Deleted token ", value)
}

// UpdateTokenValidityCmd moves the expiry date of a token.
func (commandHandler *TokenCommandHandler) UpdateTokenValidityCmd(cmd *cobra.Command, _ []string) {
	value, err := cmd.Flags().GetString("token")
	if err != nil {
		commandHandler.logger.Error("invalid token flag ", err)
		return
	}
	validUntil, err := cmd.Flags().GetString("valid-until")
	if err != nil {
		commandHandler.logger.Error("invalid valid-until flag ", err)
		return
	}

	if err := commandHandler.client.CheckVersion(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := commandHandler.client.UpdateTokenValidity(cmd.Context(), value, validUntil); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Updated validity of token ", value)
}

// CheckTokenValidityCmd reports the validity of a batch of tokens.
func (commandHandler *TokenCommandHandler) CheckTokenValidityCmd(cmd *cobra.Command, _ []string) {
	values, err := cmd.Flags().GetStringSlice("token")
	if err != nil {
		commandHandler.logger.Error("invalid token flag ", err)
		return
	}

	if err := commandHandler.client.CheckVersion(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	validity, err := commandHandler.client.CheckTokenValidity(cmd.Context(), values)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	for value, valid := range validity {
		commandHandler.logger.Info(value, " valid=", valid)
	}
}

// InitTokenCommands registers token-related commands
func InitTokenCommands(rootCmd *cobra.Command) error {
	handler, err := NewTokenCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create token command handler %w", err)
	}

	var generateTokenCmd = &cobra.Command{
		Use:   "generate-token",
		Short: "Issue an additional access token for a document",
		Run:   handler.GenerateTokenCmd,
	}
	generateTokenCmd.Flags().StringP("did", "", "", "Document id to issue the token for")
	rootCmd.AddCommand(generateTokenCmd)

	var deleteTokenCmd = &cobra.Command{
		Use:   "delete-token",
		Short: "Delete an access token",
		Run:   handler.DeleteTokenCmd,
	}
	deleteTokenCmd.Flags().StringP("token", "", "", "Token value to delete")
	rootCmd.AddCommand(deleteTokenCmd)

	var updateTokenValidityCmd = &cobra.Command{
		Use:   "update-token-validity",
		Short: "Move the expiry date of an access token",
		Run:   handler.UpdateTokenValidityCmd,
	}
	updateTokenValidityCmd.Flags().StringP("token", "", "", "Token value to update")
	updateTokenValidityCmd.Flags().StringP("valid-until", "", "", "New expiry date (YYYY-MM-DD HH:MM:SS)")
	rootCmd.AddCommand(updateTokenValidityCmd)

	var checkTokenValidityCmd = &cobra.Command{
		Use:   "check-token-validity",
		Short: "Check the validity of one or more tokens",
		Run:   handler.CheckTokenValidityCmd,
	}
	checkTokenValidityCmd.Flags().StringSliceP("token", "", nil, "Token values to check")
	rootCmd.AddCommand(checkTokenValidityCmd)

	return nil
}
