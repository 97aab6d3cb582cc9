package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javanhut/muninn/gitfs"
	"github.com/javanhut/muninn/githash"
	"github.com/javanhut/muninn/objects"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file <hash-prefix>",
	Short: "Print an object found by hash prefix",
	Long: `Look an object up by a hexadecimal prefix of its id and print it.

Commits and trees print in their textual form; blob content is written
raw to stdout. The prefix must match exactly one object.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatFile,
}

var catFileKindOnly bool

func init() {
	catFileCmd.Flags().BoolVarP(&catFileKindOnly, "type", "t", false, "Print only the object's type")
}

// resolveUnique resolves a hash prefix to the single object it names.
func resolveUnique(repo *gitfs.GitFS, prefix string) (githash.Hash, error) {
	p, err := githash.PartialFromHex(prefix)
	if err != nil {
		return githash.Hash{}, err
	}
	matches, err := repo.LookupHash(p)
	if err != nil {
		return githash.Hash{}, err
	}
	switch len(matches) {
	case 0:
		return githash.Hash{}, fmt.Errorf("no object matches %q", prefix)
	case 1:
		return matches[0], nil
	}
	return githash.Hash{}, fmt.Errorf("prefix %q is ambiguous (%d matches)", prefix, len(matches))
}

func runCatFile(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	h, err := resolveUnique(repo, args[0])
	if err != nil {
		return err
	}
	o, err := repo.GetObject(h)
	if err != nil {
		return err
	}
	if catFileKindOnly {
		fmt.Println(o.Kind())
		return nil
	}
	switch v := o.(type) {
	case *objects.Commit:
		fmt.Print(v.String())
	case *objects.Tree:
		for _, e := range v.Entries() {
			fmt.Println(e)
		}
	case *objects.Blob:
		os.Stdout.Write(v.Data)
	}
	return nil
}
