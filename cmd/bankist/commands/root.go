package commands

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "bankist",
	Short: "in-memory bank account demo service",
}
