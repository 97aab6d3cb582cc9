package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javanhut/muninn/colors"
	"github.com/javanhut/muninn/objects"
	"github.com/javanhut/muninn/refs"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show commit history",
	Long: `Walk the first-parent chain from HEAD (or a named branch) and print
each commit.

Examples:
  muninn log                  # Walk from HEAD
  muninn log --branch dev     # Walk from refs/heads/dev
  muninn log --oneline        # One line per commit
  muninn log --limit 10       # Stop after 10 commits`,
	RunE: runLog,
}

var (
	logOneline bool
	logLimit   int
	logBranch  string
)

func init() {
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "Show one line per commit")
	logCmd.Flags().IntVar(&logLimit, "limit", 0, "Limit number of commits to show")
	logCmd.Flags().StringVar(&logBranch, "branch", "", "Start from this branch instead of HEAD")
}

func runLog(cmd *cobra.Command, args []string) error {
	repo, err := openRepo()
	if err != nil {
		return err
	}

	start := refs.Head()
	if logBranch != "" {
		start = refs.Branch(logBranch)
	}
	h, err := repo.Resolve(start)
	if err != nil {
		return err
	}

	ref := objects.NewCommitRef(h)
	for shown := 0; logLimit == 0 || shown < logLimit; shown++ {
		c, err := repo.GetCommit(ref)
		if err != nil {
			return err
		}
		printCommit(ref, c)
		if len(c.Parents) == 0 {
			break
		}
		ref = c.Parents[0]
	}
	return nil
}

func printCommit(ref objects.CommitRef, c *objects.Commit) {
	if logOneline {
		subject, _, _ := strings.Cut(c.Message, "\n")
		fmt.Printf("%s %s\n", colors.Hash(ref.Hex()[:8]), subject)
		return
	}
	fmt.Printf("%s %s\n", colors.Colorize(colors.ColorBold, "commit"), colors.Hash(ref.Hex()))
	fmt.Printf("Author: %s <%s>\n", c.Author.Name, c.Author.Email)
	fmt.Printf("Date:   %s\n", c.Author.Date)
	fmt.Println()
	for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
		fmt.Printf("    %s\n", line)
	}
	fmt.Println()
}
