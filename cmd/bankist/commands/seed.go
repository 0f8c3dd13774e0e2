package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/joeldanieldsouza8/bankist/internal/bootstrap"
)

// NewSeedCmd prints the built-in seed account set as JSON, as a starting
// point for a custom seed file (see the seed_path config option)
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Print the default seed accounts as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(bootstrap.DefaultSeed())
		},
	}
}
