package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	authUseCase "github.com/allisson/staffdocs/internal/auth/usecase"
)

// RunCleanExpiredTokens deletes refresh token records past their expiry.
// Supports both text and JSON output formats.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("cleaning expired refresh tokens")

	count, err := sessionUseCase.CleanExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean expired tokens: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCleanExpiredJSON(count, writer)
	} else {
		outputCleanExpiredText(count, writer)
	}

	logger.Info("cleanup completed", slog.Int64("count", count))

	return nil
}

// outputCleanExpiredText outputs the result in human-readable text format.
func outputCleanExpiredText(count int64, writer io.Writer) {
	_, _ = fmt.Fprintf(writer, "Successfully deleted %d expired refresh token(s)\n", count)
}

// outputCleanExpiredJSON outputs the result in JSON format for machine consumption.
func outputCleanExpiredJSON(count int64, writer io.Writer) {
	result := map[string]interface{}{
		"count": count,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
