// Package cli implements the muninn command line: read-only inspection of
// a repository's refs and objects.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javanhut/muninn/gitfs"
)

const MuninnVersion = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "muninn",
	Short: "Muninn inspects Git object databases",
	Long:  `Muninn is a read-only inspector for Git repositories: refs, commits, trees, blobs and pack indexes, straight from the on-disk object database.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetLevel(logrus.WarnLevel)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if version {
			fmt.Printf("Muninn Version %s\n", MuninnVersion)
			os.Exit(0)
		}
		cmd.Help()
	},
}

var (
	version  bool
	verbose  bool
	repoPath string
)

// openRepo opens the repository named by --repo.
func openRepo() (*gitfs.GitFS, error) {
	repo, err := gitfs.Open(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", repoPath, err)
	}
	return repo, nil
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&version, "version", false, "Print the Muninn version")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", ".git", "Path to the repository directory")

	rootCmd.AddCommand(headCmd)
	rootCmd.AddCommand(descriptionCmd)
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(catFileCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(lookupCmd)
}
