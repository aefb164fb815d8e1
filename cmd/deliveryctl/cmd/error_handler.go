package cmd

import (
	"errors"
	"fmt"
	"os"

	apperrors "delivery-order-service/pkg/errors"
	"delivery-order-service/pkg/logger"
)

// HandleError reports a fatal error to the user and exits with the
// category-specific exit code
func HandleError(err error) {
	if err == nil {
		return
	}

	logger.GetGlobalLogger().WithError(err).Error("Command failed")

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", appErr.GetUserMessage())
		for key, value := range appErr.Context {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", key, value)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	os.Exit(apperrors.GetExitCode(err))
}
