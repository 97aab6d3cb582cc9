package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javanhut/muninn/colors"
	"github.com/javanhut/muninn/refs"
)

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Show what HEAD points at",
	RunE:  runHead,
}

var descriptionCmd = &cobra.Command{
	Use:   "description",
	Short: "Print the repository description",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepo()
		if err != nil {
			return err
		}
		desc, err := repo.Description()
		if err != nil {
			return err
		}
		fmt.Print(desc)
		return nil
	},
}

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "List branches, tags and remotes",
	RunE:  runRefs,
}

var (
	refsBranches bool
	refsTags     bool
	refsRemotes  bool
)

func init() {
	refsCmd.Flags().BoolVar(&refsBranches, "branches", false, "List only branches")
	refsCmd.Flags().BoolVar(&refsTags, "tags", false, "List only tags")
	refsCmd.Flags().BoolVar(&refsRemotes, "remotes", false, "List only remotes")
}

func runHead(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return err
	}
	if link, ok := head.Link(); ok {
		h, err := repo.Resolve(link)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", link, colors.Hash(h.Hex()))
		return nil
	}
	h, _ := head.Hash()
	fmt.Printf("detached at %s\n", colors.Hash(h.Hex()))
	return nil
}

func runRefs(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}
	all := !refsBranches && !refsTags && !refsRemotes

	show := func(list []refs.SpecRef, paint func(string) string) error {
		for _, sr := range list {
			h, err := repo.Resolve(sr)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", colors.Hash(h.Hex()), paint(sr.String()))
		}
		return nil
	}

	if all || refsBranches {
		branches, err := repo.ListBranches()
		if err != nil {
			return err
		}
		if err := show(branches, colors.Branch); err != nil {
			return err
		}
	}
	if all || refsTags {
		tags, err := repo.ListTags()
		if err != nil {
			return err
		}
		if err := show(tags, colors.Tag); err != nil {
			return err
		}
	}
	if all || refsRemotes {
		remotes, err := repo.ListRemotes()
		if err != nil {
			return err
		}
		if err := show(remotes, colors.Remote); err != nil {
			return err
		}
	}
	return nil
}
