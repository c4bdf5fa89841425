package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	userDomain "github.com/allisson/staffdocs/internal/user/domain"
	userUseCase "github.com/allisson/staffdocs/internal/user/usecase"
)

// RunCreateUser creates a new user account. Supports both interactive mode
// (when password is empty the command prompts for it) and non-interactive mode.
// Outputs the created account in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UserUseCase,
	logger *slog.Logger,
	username string,
	fullName string,
	email string,
	password string,
	role string,
	isActive bool,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new user", slog.String("username", username))

	accountRole := authDomain.Role(role)
	if !accountRole.Valid() {
		return fmt.Errorf("invalid role: %s (valid options: admin, operator)", role)
	}

	if password == "" {
		// Interactive mode
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to get password: %w", err)
		}
	}

	input := &userDomain.CreateUserInput{
		Username: username,
		FullName: fullName,
		Email:    email,
		Password: password,
		Role:     accountRole,
		IsActive: isActive,
	}

	user, err := useCase.Create(ctx, cliPrincipal(), input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputCreateUserJSON(user, io.Writer)
	} else {
		outputCreateUserText(user, io.Writer)
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", username),
		slog.String("role", string(user.Role)),
		slog.Bool("is_active", isActive),
	)

	return nil
}

// promptForPassword interactively prompts for the initial account password.
func promptForPassword(io IOTuple) (string, error) {
	reader := bufio.NewReader(io.Reader)

	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password = strings.TrimSpace(password)

	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// outputCreateUserText outputs the result in human-readable text format.
func outputCreateUserText(user *userDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", user.ID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Role: %s\n", user.Role)
	_, _ = fmt.Fprintf(writer, "Active: %t\n", user.IsActive)
}

// outputCreateUserJSON outputs the result in JSON format for machine consumption.
func outputCreateUserJSON(user *userDomain.User, writer io.Writer) {
	result := map[string]interface{}{
		"user_id":   user.ID.String(),
		"username":  user.Username,
		"role":      string(user.Role),
		"is_active": user.IsActive,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
