package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logosCmd = &cobra.Command{
	Use:   "logos",
	Short: "List the logos in the catalog",
	Long:  `Shows every logo identifier the quiz can pick, with the file it loads.`,
	RunE:  runLogos,
}

func runLogos(cmd *cobra.Command, _ []string) error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	maxIDLen := 2 // "ID" header
	for _, id := range cat.IDs() {
		maxIDLen = max(maxIDLen, len(id))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "File")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "----")
	for _, id := range cat.IDs() {
		file, err := cat.Resolve(id)
		if err != nil {
			file = "(not loadable: " + err.Error() + ")"
		}
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, id, file)
	}
	fmt.Fprintf(out, "\n%d logos.\n", cat.Len())
	return nil
}
