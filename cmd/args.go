package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/spf13/cobra"
)

const fromEnv = "FM_FROM"

var errMissingCaller = errors.New("--from is required (or set " + fromEnv + ")")

func addFromFlag(cmd *cobra.Command, from *string) {
	cmd.Flags().StringVar(from, "from", envOrDefault(fromEnv, ""), "Caller address (default $"+fromEnv+")")
}

func parseCaller(raw string) (domain.Address, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errMissingCaller
	}

	caller, err := domain.ParseAddress(raw)
	if err != nil {
		return "", fmt.Errorf("--from: %w", err)
	}
	return caller, nil
}

func parseAddressArg(name, raw string) (domain.Address, error) {
	address, err := domain.ParseAddress(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return address, nil
}
