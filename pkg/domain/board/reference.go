package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OwnerType selects the GraphQL root field used to look a project up.
type OwnerType string

const (
	OwnerOrganization OwnerType = "organization"
	OwnerUser         OwnerType = "user"
)

var referencePattern = regexp.MustCompile(`(?m)^.*(orgs|users)/([^/]+)/projects/([0-9]+).*$`)

// Reference identifies a project by owner and number.
type Reference struct {
	OwnerType OwnerType
	Owner     string
	Number    int
}

func (r Reference) String() string {
	segment := "users"
	if r.OwnerType == OwnerOrganization {
		segment = "orgs"
	}
	return fmt.Sprintf("%s/%s/projects/%d", segment, r.Owner, r.Number)
}

// ParseReference extracts the owner and number from a project URL such as
// https://github.com/orgs/acme/projects/7/views/1. Text around the
// "<orgs|users>/<owner>/projects/<number>" part is ignored. In multi-line
// input the reference may sit on any line.
func ParseReference(raw string) (Reference, error) {
	m := referencePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Reference{}, fmt.Errorf("%w: %q", ErrMalformedReference, raw)
	}

	number, err := strconv.Atoi(m[3])
	if err != nil {
		return Reference{}, fmt.Errorf("%w: project number %q: %v", ErrMalformedReference, m[3], err)
	}

	ownerType := OwnerUser
	if m[1] == "orgs" {
		ownerType = OwnerOrganization
	}
	return Reference{OwnerType: ownerType, Owner: m[2], Number: number}, nil
}
