package pas

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

const (
	DefaultJWTPluginID = "jwt_auth"
	DefaultCookieName  = "__ac"
	DefaultTokenTTL    = 12 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

type JWTConfig struct {
	Secret     []byte
	TTL        time.Duration
	CookieName string
	// UpdateCredentials makes the plugin issue a token on every successful
	// authentication. When false the plugin only validates tokens.
	UpdateCredentials bool
}

// Claims is the token payload shared by the plugin and the auth middleware.
type Claims struct {
	FullName string   `json:"fullname,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Groups   []string `json:"groups,omitempty"`
	jwt.RegisteredClaims
}

// Principal turns validated claims into the requester identity.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{UserID: c.Subject, Roles: c.Roles, Groups: c.Groups}
}

// JWTPlugin issues and validates HS256 tokens for the folder it lives in.
type JWTPlugin struct {
	id     string
	folder string
	cfg    JWTConfig
	now    func() time.Time
}

var (
	_ ports.TokenPlugin  = (*JWTPlugin)(nil)
	_ CredentialsUpdater = (*JWTPlugin)(nil)
)

func NewJWTPlugin(id, folderPath string, cfg JWTConfig) *JWTPlugin {
	if id == "" {
		id = DefaultJWTPluginID
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	return &JWTPlugin{id: id, folder: domain.CleanPath(folderPath), cfg: cfg, now: time.Now}
}

func (p *JWTPlugin) ID() string         { return p.id }
func (p *JWTPlugin) MetaType() string   { return ports.JWTPluginMetaType }
func (p *JWTPlugin) CookieName() string { return p.cfg.CookieName }
func (p *JWTPlugin) TTL() time.Duration { return p.cfg.TTL }

func (p *JWTPlugin) Path() string {
	if p.folder == "/" {
		return "/acl_users/" + p.id
	}
	return p.folder + "/acl_users/" + p.id
}

// Issue signs a token for user.
func (p *JWTPlugin) Issue(user *domain.User) (string, error) {
	now := p.now().UTC()
	claims := Claims{
		FullName: user.FullName,
		Roles:    user.Roles,
		Groups:   user.Groups,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.cfg.TTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates token and returns its claims.
func (p *JWTPlugin) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.cfg.Secret, nil
	}, jwt.WithTimeFunc(p.now))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParsePrincipal validates token and returns the principal it names.
func (p *JWTPlugin) ParsePrincipal(token string) (domain.Principal, error) {
	claims, err := p.Parse(token)
	if err != nil {
		return domain.Principal{}, err
	}
	return claims.Principal(), nil
}

func (p *JWTPlugin) UpdateCredentials(_ context.Context, user *domain.User, req *domain.AuthRequest) error {
	if !p.cfg.UpdateCredentials {
		return nil
	}
	token, err := p.Issue(user)
	if err != nil {
		return err
	}
	if req.Values == nil {
		req.Values = make(map[string]string)
	}
	req.Values[p.cfg.CookieName] = token
	return nil
}
