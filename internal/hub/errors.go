package hub

import "errors"

// notFoundError signals a repository or file missing on the hub.
type notFoundError struct {
	repo string
	file string
}

func (e notFoundError) Error() string {
	return "hub: " + e.file + " not found in repository " + e.repo + " (does it exist and is it public?)"
}

// ErrNotFound constructs a notFoundError.
func ErrNotFound(repo, file string) error { return notFoundError{repo: repo, file: file} }

// IsNotFound reports whether err (or any error it wraps) is a missing hub file.
func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}
