package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// DefaultSearchResultsLimit caps the raw id search when no limit is given.
const DefaultSearchResultsLimit = 25

// UserService implements the user directory queries.
type UserService struct {
	dir ports.UserDirectory
	log zerolog.Logger
}

func NewUserService(dir ports.UserDirectory, log zerolog.Logger) *UserService {
	return &UserService{dir: dir, log: log}
}

// Search filters users by id prefix/substring (Query) or by a fuzzy match on
// login, full name and email (Search), then keeps only members of
// GroupsFilter when given.
func (s *UserService) Search(ctx context.Context, sec ports.Security, q ports.UserQuery) ([]*domain.User, error) {
	if !sec.CheckPermission(domain.PermManagePortal, nil) {
		return nil, domain.ErrUnauthorized
	}
	if q.Query == "" && len(q.GroupsFilter) == 0 && q.Search == "" && q.Limit <= 0 {
		return nil, domain.ErrInvalidParams
	}

	var (
		users []*domain.User
		err   error
	)
	if q.Search != "" {
		users, err = s.searchAllFields(ctx, q.Search)
	} else {
		var infos []domain.PrincipalInfo
		infos, err = s.dir.SearchUsers(ctx, ports.UserSearch{ID: q.Query, MaxResults: q.Limit})
		if err == nil {
			users, err = s.members(ctx, infos)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	if len(q.GroupsFilter) > 0 {
		filtered := users[:0]
		for _, u := range users {
			if u != nil && u.InGroups(q.GroupsFilter) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	return sortUsers(users), nil
}

// Enumerate lists every user known to the directory.
func (s *UserService) Enumerate(ctx context.Context, sec ports.Security) ([]*domain.User, error) {
	if !sec.CheckPermission(domain.PermManagePortal, nil) {
		return nil, domain.ErrUnauthorized
	}
	infos, err := s.dir.EnumerateUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate users: %w", err)
	}
	users, err := s.members(ctx, mergeByUserID(infos))
	if err != nil {
		return nil, fmt.Errorf("enumerate users: %w", err)
	}
	return sortUsers(users), nil
}

// Get returns one user. Requesters may always read their own record.
func (s *UserService) Get(ctx context.Context, sec ports.Security, userID string) (*domain.User, error) {
	current := sec.Principal().UserID
	self := current != "" && current == userID
	if !self && !sec.CheckPermission(domain.PermAccessUserInfo, nil) {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.dir.GetMemberByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) searchAllFields(ctx context.Context, term string) ([]*domain.User, error) {
	queries := []ports.UserSearch{
		{Login: term},
		{FullName: term},
		{Email: term},
	}
	var hits []domain.PrincipalInfo
	for _, q := range queries {
		found, err := s.dir.SearchUsers(ctx, q)
		if err != nil {
			return nil, err
		}
		hits = append(hits, found...)
	}
	return s.members(ctx, mergeByUserID(hits))
}

// members loads the full record for each hit. Ids without a record yield
// nil entries.
func (s *UserService) members(ctx context.Context, infos []domain.PrincipalInfo) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(infos))
	for _, info := range infos {
		u, err := s.dir.GetMemberByID(ctx, info.UserID)
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("user_id", info.UserID).Msg("search hit without member record")
			users = append(users, nil)
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// mergeByUserID drops repeated hits, keeping the first occurrence.
func mergeByUserID(infos []domain.PrincipalInfo) []domain.PrincipalInfo {
	seen := make(map[string]struct{}, len(infos))
	out := make([]domain.PrincipalInfo, 0, len(infos))
	for _, info := range infos {
		if _, dup := seen[info.UserID]; dup {
			continue
		}
		seen[info.UserID] = struct{}{}
		out = append(out, info)
	}
	return out
}

// sortUsers orders by normalized full name; nil entries come first.
func sortUsers(users []*domain.User) []*domain.User {
	keys := make(map[*domain.User]string, len(users))
	for _, u := range users {
		if u != nil {
			keys[u] = normalizeName(u.FullName)
		}
	}
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if a == nil || b == nil {
			return a == nil && b != nil
		}
		return keys[a] < keys[b]
	})
	return users
}
