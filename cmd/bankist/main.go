package main

import (
	"context"
	"log"

	"github.com/joeldanieldsouza8/bankist/cmd/bankist/commands"
)

func main() {
	ctx := context.Background()

	commands.RootCmd.AddCommand(commands.NewServeCmd())
	commands.RootCmd.AddCommand(commands.NewSeedCmd())

	if err := commands.RootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("bankist: %s", err)
	}
}
