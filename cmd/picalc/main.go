package main

import (
	"context"
	"os"

	"github.com/agbru/picalc/internal/app"
	apperrors "github.com/agbru/picalc/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		switch {
		case app.IsHelpError(err):
			os.Exit(apperrors.ExitSuccess)
		case apperrors.IsConfigError(err):
			os.Exit(apperrors.ExitErrorConfig)
		}
		os.Exit(apperrors.ExitErrorGeneric)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
