package serializer

import (
	"fmt"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/jsoncompat"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// UsersServiceID is the path segment of the users endpoint.
const UsersServiceID = "@users"

func userURL(u *domain.User, req *ports.Request) string {
	return fmt.Sprintf("%s/%s/%s", req.AbsoluteURL("/"), UsersServiceID, u.ID)
}

// User is the full representation of a member record. A nil user, an id
// without a record, renders as nil.
func User(u *domain.User, req *ports.Request) (map[string]any, error) {
	if u == nil {
		return nil, nil
	}
	return jsoncompat.Mapping(map[string]any{
		"@id":         userURL(u, req),
		"id":          u.ID,
		"username":    u.Login,
		"fullname":    u.FullName,
		"email":       u.Email,
		"description": u.Description,
		"location":    u.Location,
		"home_page":   u.HomePage,
		"roles":       nonNilStrings(u.Roles),
		"groups":      nonNilStrings(u.Groups),
	})
}

// UserSummary is the reduced representation returned by single lookups.
func UserSummary(u *domain.User, req *ports.Request) (map[string]any, error) {
	if u == nil {
		return nil, nil
	}
	return jsoncompat.Mapping(map[string]any{
		"@id":      userURL(u, req),
		"id":       u.ID,
		"username": u.Login,
		"fullname": u.FullName,
		"email":    u.Email,
	})
}

// Users renders a listing; entries without a record stay as nil.
func Users(users []*domain.User, req *ports.Request) ([]any, error) {
	out := make([]any, 0, len(users))
	for _, u := range users {
		m, err := User(u, req)
		if err != nil {
			return nil, err
		}
		if m == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
