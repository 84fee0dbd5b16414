package app

import (
	"github.com/bookhaven/backend/internal/auth"
	"github.com/bookhaven/backend/pkg/crypto"
)

// TokenServiceConfig converts AuthConfig into the parameters expected by the token service.
func (c AuthConfig) TokenServiceConfig() auth.TokenConfig {
	accessTTL := c.JWT.AccessTTL
	if accessTTL <= 0 {
		accessTTL = auth.DefaultAccessTokenTTL
	}
	refreshTTL := c.JWT.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = auth.DefaultRefreshTokenTTL
	}
	verifyTTL := c.Tokens.EmailTTL
	if verifyTTL <= 0 {
		verifyTTL = auth.DefaultVerifyTokenTTL
	}
	resetTTL := c.Tokens.ResetTTL
	if resetTTL <= 0 {
		resetTTL = auth.DefaultResetTokenTTL
	}

	return auth.TokenConfig{
		Secret:      c.JWT.Secret,
		EmailSecret: c.Tokens.EmailSecret,
		ResetSecret: c.Tokens.ResetSecret,
		Issuer:      c.JWT.Issuer,
		AccessTTL:   accessTTL,
		RefreshTTL:  refreshTTL,
		VerifyTTL:   verifyTTL,
		ResetTTL:    resetTTL,
	}
}

// ServiceConfig converts AuthConfig into auth.Service parameters.
func (c AuthConfig) ServiceConfig() auth.ServiceConfig {
	cost := c.Local.BcryptCost
	if cost <= 0 {
		cost = crypto.DefaultBcryptCost
	}

	return auth.ServiceConfig{
		BcryptCost: cost,
	}
}
