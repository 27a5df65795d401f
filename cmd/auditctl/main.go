package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "auditctl",
		Short:         "Offline tooling for audit engagement data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newParseBalancesCmd())
	root.AddCommand(newParseCOACmd())
	root.AddCommand(newConvertPCMCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
