package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
)

// UserFinder is the read-only user lookup the resolver needs from storage.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// Resolver turns an inbound request into an authenticated principal by
// chaining the extractor, the token codec, and a user lookup.
type Resolver struct {
	users     UserFinder
	extractor *Extractor
	secretKey []byte
	logger    logging.Logger
}

func NewResolver(users UserFinder, extractor *Extractor, secretKey []byte, logger logging.Logger) *Resolver {
	return &Resolver{
		users:     users,
		extractor: extractor,
		secretKey: secretKey,
		logger:    logger.With("module", "auth_resolver"),
	}
}

// RequireUser resolves the principal for a protected request. Every failure
// (missing token, bad signature, expired token, unknown subject) collapses
// to common.ErrorUnauthorized so callers cannot tell the causes apart; the
// specific cause is only logged.
func (r *Resolver) RequireUser(ctx context.Context, req Request) (*models.User, error) {
	token := r.extractor.Extract(req)
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	return r.resolveToken(ctx, token)
}

// OptionalUser resolves the principal for page rendering. Only the raw
// cookie-jar channel is consulted: the bound cookie value and the
// Authorization header are ignored on this path. Any failure yields a nil
// principal; OptionalUser never returns an error.
func (r *Resolver) OptionalUser(ctx context.Context, req Request) *models.User {
	token := r.extractor.ExtractCookieOnly(req)
	if token == "" {
		return nil
	}
	user, err := r.resolveToken(ctx, token)
	if err != nil {
		return nil
	}
	return user
}

func (r *Resolver) resolveToken(ctx context.Context, token string) (*models.User, error) {
	subject, err := ParseSubject(token, r.secretKey)
	if err != nil {
		// expired vs. invalid matters to operators, not to callers
		r.logger.Warn(ctx, "token rejected", "cause", err.Error())
		return nil, common.ErrorUnauthorized
	}

	user, err := r.users.FindByUsername(ctx, subject)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			r.logger.Error(ctx, "user lookup failed", "error", err.Error())
		}
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}
