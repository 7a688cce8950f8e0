package env

import (
	"os"
	"path/filepath"

	"github.com/svcsuite/secutils/errors"
)

// rootMarkers are the files/directories whose presence identifies the
// project root.
var rootMarkers = []string{"go.mod", ".git"}

// ProjectRoot walks upward from the current working directory until a
// directory containing a project marker (go.mod or .git) is found and
// returns its absolute path. It fails with
// *errors.ProjectRootNotFoundError when the filesystem root is reached
// without finding one.
func ProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.NewProjectRootNotFoundError("")
	}
	return ProjectRootFrom(cwd)
}

// ProjectRootFrom behaves like ProjectRoot but starts the upward walk at
// the given directory.
func ProjectRootFrom(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.NewProjectRootNotFoundError(start)
	}

	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.NewProjectRootNotFoundError(start)
		}
		dir = parent
	}
}
