package commands

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tna76874/docdepot/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// DocumentCommandHandler encapsulates logic for depositing documents via CLI.
type DocumentCommandHandler struct {
	client *Client
	logger logger.Logger
}

// NewDocumentCommandHandler initializes and returns a DocumentCommandHandler
// instance with configured logger and server client.
func NewDocumentCommandHandler() (*DocumentCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	client, err := NewClientFromEnv(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &DocumentCommandHandler{
		client: client,
		logger: loggerInstance,
	}, nil
}

// UploadDocumentCmd deposits a file and prints the document id and the
// first access token.
func (commandHandler *DocumentCommandHandler) UploadDocumentCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag ", err)
		return
	}
	title, err := cmd.Flags().GetString("title")
	if err != nil {
		commandHandler.logger.Error("invalid title flag ", err)
		return
	}
	filename, err := cmd.Flags().GetString("filename")
	if err != nil {
		commandHandler.logger.Error("invalid filename flag ", err)
		return
	}
	userUID, err := cmd.Flags().GetString("user-uid")
	if err != nil {
		commandHandler.logger.Error("invalid user-uid flag ", err)
		return
	}

	if err := commandHandler.client.CheckVersion(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	data, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	digest := sha256.Sum256(data)
	checksum := hex.EncodeToString(digest[:])

	receipt, err := commandHandler.client.UploadDocument(cmd.Context(), inputFilePath, title, filename, userUID, checksum)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Document deposited with id ", receipt.DID)
	commandHandler.logger.Info("Access token ", receipt.Token)
	for _, check := range receipt.Checks {
		if !check.Passed {
			commandHandler.logger.Warn("Check failed: ", check.Name, " ", check.Detail)
		}
	}
}

// InitDocumentCommands registers document-related commands
func InitDocumentCommands(rootCmd *cobra.Command) error {
	handler, err := NewDocumentCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create document command handler %w", err)
	}

	var uploadDocumentCmd = &cobra.Command{
		Use:   "upload",
		Short: "Deposit a document and receive an access token",
		Run:   handler.UploadDocumentCmd,
	}
	uploadDocumentCmd.Flags().StringP("input-file", "", "", "Path to the file to deposit")
	uploadDocumentCmd.Flags().StringP("title", "", "", "Title shown on the status page")
	uploadDocumentCmd.Flags().StringP("filename", "", "", "Filename presented on retrieval (defaults to the input file name)")
	uploadDocumentCmd.Flags().StringP("user-uid", "", "", "Owner of the document")
	rootCmd.AddCommand(uploadDocumentCmd)

	return nil
}
