package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javanhut/muninn/colors"
	"github.com/javanhut/muninn/githash"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <hash-prefix>",
	Short: "List object ids matching a hash prefix",
	Long: `Search the loose object store and every pack index for ids that
begin with the given hexadecimal prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	p, err := githash.PartialFromHex(args[0])
	if err != nil {
		return err
	}
	matches, err := repo.LookupHash(p)
	if err != nil {
		return err
	}
	for _, h := range matches {
		fmt.Println(colors.Hash(h.Hex()))
	}
	return nil
}
