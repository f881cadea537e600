package filesystem

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrDirtyTree is returned by VerifyClean when the working tree has
// uncommitted changes.
var ErrDirtyTree = errors.New("working tree has uncommitted changes")

// ChangedFiles returns the modified, added and untracked files below root
// according to git, as slash separated paths relative to root.
func ChangedFiles(root string) ([]string, error) {
	// porcelain paths are relative to the repository top level
	prefix, err := git(root, "rev-parse", "--show-prefix")
	if err != nil {
		return nil, err
	}
	prefix = strings.TrimSpace(prefix)

	// -z keeps paths verbatim, without C-style quoting
	output, err := git(root, "status", "--porcelain", "-z", "--untracked-files=all", "--", ".")
	if err != nil {
		return nil, err
	}

	var files []string
	fields := strings.Split(output, "\x00")
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if len(field) < 4 {
			continue
		}
		// The first two characters are status codes, followed by a space, then the path
		// e.g. " M src/app.tsx" or "?? newfile.ts". Renames and copies carry the
		// new path and then the old one in the next field.
		status, relPath := field[:2], field[3:]
		if strings.ContainsAny(status, "RC") {
			i++
		}
		files = append(files, strings.TrimPrefix(relPath, prefix))
	}

	return files, nil
}

// VerifyClean fails with ErrDirtyTree when ChangedFiles reports anything.
func VerifyClean(root string) error {
	files, err := ChangedFiles(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}
	return fmt.Errorf("%w (%d files):\n  %s", ErrDirtyTree, len(files), strings.Join(files, "\n  "))
}

func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(output), nil
}
