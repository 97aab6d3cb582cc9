package gitfs

import (
	"fmt"
	"os"
	"path/filepath"
)

// walkFiles lists every file under root, breadth-first, as slash-separated
// paths relative to root. A missing root yields an empty list: a repository
// without refs/remotes simply has no remotes.
func walkFiles(root string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}
	var out []string
	queue := []string{""}
	for len(queue) > 0 {
		rel := queue[0]
		queue = queue[1:]
		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
		for _, ent := range entries {
			sub := ent.Name()
			if rel != "" {
				sub = rel + "/" + sub
			}
			if ent.IsDir() {
				queue = append(queue, sub)
			} else {
				out = append(out, sub)
			}
		}
	}
	return out, nil
}
