package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cmsbridge/restapi/internal/api/middleware"
	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

type stubUserService struct {
	searchFn    func(ctx context.Context, sec ports.Security, q ports.UserQuery) ([]*domain.User, error)
	enumerateFn func(ctx context.Context, sec ports.Security) ([]*domain.User, error)
	getFn       func(ctx context.Context, sec ports.Security, userID string) (*domain.User, error)
}

func (s *stubUserService) Search(ctx context.Context, sec ports.Security, q ports.UserQuery) ([]*domain.User, error) {
	return s.searchFn(ctx, sec, q)
}

func (s *stubUserService) Enumerate(ctx context.Context, sec ports.Security) ([]*domain.User, error) {
	return s.enumerateFn(ctx, sec)
}

func (s *stubUserService) Get(ctx context.Context, sec ports.Security, userID string) (*domain.User, error) {
	return s.getFn(ctx, sec, userID)
}

func newUsersContext(target string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetTraversal(c, "/", params)
	return c, rec
}

func TestUsersHandler_SearchParsesQuery(t *testing.T) {
	stub := &stubUserService{
		searchFn: func(ctx context.Context, sec ports.Security, q ports.UserQuery) ([]*domain.User, error) {
			if q.Query != "jo" || q.Limit != 25 {
				t.Fatalf("unexpected query: %+v", q)
			}
			if len(q.GroupsFilter) != 2 || q.GroupsFilter[0] != "Editors" || q.GroupsFilter[1] != "Reviewers" {
				t.Fatalf("unexpected groups filter: %v", q.GroupsFilter)
			}
			return []*domain.User{nil, {ID: "jo", FullName: "Jo"}}, nil
		},
	}
	h := NewUsersHandler(stub, "http://cms.local")

	c, rec := newUsersContext("/@users?query=jo&groups-filter:list=Editors&groups-filter=Reviewers")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0] != nil || resp[1]["@id"] != "http://cms.local/@users/jo" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp[1]["roles"]; !ok {
		t.Fatalf("listing should use the full representation")
	}
}

func TestUsersHandler_SearchLimit(t *testing.T) {
	cases := []struct {
		target    string
		wantLimit int
		wantErr   error
	}{
		{"/@users?limit=5", 5, nil},
		{"/@users?limit=-3", 0, nil},
		{"/@users?limit=abc", 0, domain.ErrInvalidParams},
	}

	for _, tc := range cases {
		called := false
		stub := &stubUserService{
			searchFn: func(ctx context.Context, sec ports.Security, q ports.UserQuery) ([]*domain.User, error) {
				called = true
				if q.Limit != tc.wantLimit {
					t.Fatalf("%s: expected limit %d, got %d", tc.target, tc.wantLimit, q.Limit)
				}
				return nil, nil
			},
		}
		c, _ := newUsersContext(tc.target)
		err := NewUsersHandler(stub, "").Get(c)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.target, tc.wantErr, err)
		}
		if called == (tc.wantErr != nil) {
			t.Fatalf("%s: unexpected service call state %v", tc.target, called)
		}
	}
}

func TestUsersHandler_UnauthorizedHasEmptyBody(t *testing.T) {
	stub := &stubUserService{
		enumerateFn: func(ctx context.Context, sec ports.Security) ([]*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	c, rec := newUsersContext("/@users")
	if err := NewUsersHandler(stub, "").Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 401, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestUsersHandler_GetSummary(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, sec ports.Security, userID string) (*domain.User, error) {
			if userID != "jane" {
				t.Fatalf("unexpected id %q", userID)
			}
			return &domain.User{ID: "jane", Login: "jane", Roles: []string{"Member"}}, nil
		},
	}
	c, rec := newUsersContext("/@users/jane", "jane")
	if err := NewUsersHandler(stub, "http://cms.local").Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "jane" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["roles"]; ok {
		t.Fatalf("single lookup should use the summary representation")
	}
}

func TestUsersHandler_GetUnknownHasEmptyBody(t *testing.T) {
	stub := &stubUserService{
		getFn: func(ctx context.Context, sec ports.Security, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	c, rec := newUsersContext("/@users/nobody", "nobody")
	if err := NewUsersHandler(stub, "").Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 404, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestUsersHandler_TooManyParams(t *testing.T) {
	c, _ := newUsersContext("/@users/a/b", "a", "b")
	if err := NewUsersHandler(&stubUserService{}, "").Get(c); !errors.Is(err, domain.ErrTooManyParams) {
		t.Fatalf("expected ErrTooManyParams, got %v", err)
	}
}
