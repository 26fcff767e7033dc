package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
)

// LoginService authenticates against the user folder responsible for the
// login location and returns the token issued by its JWT plugin.
type LoginService struct {
	resolver  ports.UserFolderResolver
	postLogin ports.PostLoginHook
	log       zerolog.Logger
}

func NewLoginService(resolver ports.UserFolderResolver, postLogin ports.PostLoginHook, log zerolog.Logger) *LoginService {
	return &LoginService{resolver: resolver, postLogin: postLogin, log: log}
}

func (s *LoginService) Login(ctx context.Context, in ports.LoginInput) (string, error) {
	req := in.Request
	if req == nil {
		req = domain.NewAuthRequest(domain.DefaultUserFolderPath)
	}

	// Plugins reading legacy form credentials expect them on the request.
	if req.Form == nil {
		req.Form = make(map[string]string)
	}
	req.Form[domain.FormLoginKey] = in.Login
	req.Form[domain.FormPasswordKey] = in.Password

	folder, err := s.resolver.Resolve(ctx, req.Location, in.Login)
	if err != nil {
		return "", fmt.Errorf("login: resolve user folder: %w", err)
	}

	var (
		user   *domain.User
		plugin ports.TokenPlugin
	)
	if folder != nil {
		plugin = findTokenPlugin(folder.AuthenticationPlugins())
		if plugin == nil {
			s.log.Error().Str("path", folder.Path()).Msg(domain.ErrPluginNotInstalled.Error())
			return "", domain.ErrPluginNotInstalled
		}
		user, err = folder.Authenticate(ctx, in.Login, in.Password, req)
		if err != nil {
			return "", fmt.Errorf("login: authenticate: %w", err)
		}
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}

	if err := s.postLogin.AfterLogin(ctx, user, req); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("post-login bookkeeping failed")
	}

	token, ok := req.Value(plugin.CookieName())
	if !ok {
		s.log.Error().Str("path", plugin.Path()).Msg(domain.ErrTokenNotCreated.Error())
		return "", domain.ErrTokenNotCreated
	}

	s.log.Info().Str("user_id", user.ID).Str("folder", folder.Path()).Msg("user logged in")
	return token, nil
}

func findTokenPlugin(plugins []ports.AuthenticationPlugin) ports.TokenPlugin {
	for _, p := range plugins {
		if p.MetaType() != ports.JWTPluginMetaType {
			continue
		}
		if tp, ok := p.(ports.TokenPlugin); ok {
			return tp
		}
	}
	return nil
}
