// Package gitops versions a workspace through the git command line.
package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author signs workspace commits.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	return nil
}

// git runs a command as author so commits work without a global identity.
func git(dir string, author Author, args ...string) *exec.Cmd {
	full := append([]string{"-c", "user.name=" + author.Name, "-c", "user.email=" + author.Email}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	return cmd
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(dir, message string, author Author) (string, error) {
	return commit(dir, message, author, "-A")
}

// CommitPaths stages only the given paths and commits them. Returns the short
// commit hash.
func CommitPaths(dir, message string, author Author, paths ...string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("no paths to commit")
	}
	return commit(dir, message, author, append([]string{"--"}, paths...)...)
}

func commit(dir, message string, author Author, addArgs ...string) (string, error) {
	add := git(dir, author, append([]string{"add"}, addArgs...)...)
	if out, err := add.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	c := git(dir, author, "commit", "--quiet", "-m", message, "--author", author.String())
	if out, err := c.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	rev := git(dir, author, "rev-parse", "--short", "HEAD")
	out, err := rev.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// HasChanges reports whether the working tree differs from HEAD, optionally
// limited to paths.
func HasChanges(dir string, paths ...string) (bool, error) {
	args := []string{"status", "--porcelain"}
	if len(paths) > 0 {
		args = append(append(args, "--"), paths...)
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}

// IsRepo reports whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
