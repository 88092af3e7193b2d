package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRepositoryRef is returned when a repository string cannot yield
// an owner and a name. It is fatal: the caller aborts without retrying.
var ErrInvalidRepositoryRef = errors.New("invalid repository reference")

// RepositoryRef identifies a repository by owner and name.
// It is parsed once and immutable afterwards.
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r RepositoryRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepositoryRef resolves a free-form repository string: a full URL
// ("https://github.com/owner/repo"), a bare host path ("github.com/owner/repo")
// or plain "owner/repo". All three forms yield the identical RepositoryRef.
func ParseRepositoryRef(raw string) (RepositoryRef, error) {
	s := strings.TrimPrefix(raw, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "github.com/")

	var segments []string
	for _, segment := range strings.Split(s, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) < 2 {
		return RepositoryRef{}, fmt.Errorf("%w: cannot extract owner and repository from %q", ErrInvalidRepositoryRef, raw)
	}
	return RepositoryRef{Owner: segments[0], Name: segments[1]}, nil
}
