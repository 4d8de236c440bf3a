package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

var ErrNoUser = errors.New("user not found in context")

// CurrentUsername retrieves the current username from the context.
// Returns ErrNoUser if no username is present.
func CurrentUsername(ctx context.Context) (string, error) {
	username, ok := ctx.Value(UserKey).(string)
	if !ok || username == "" {
		log.Trace("user not found in context")
		return "", ErrNoUser
	}
	return username, nil
}

func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UserKey, username)
}
