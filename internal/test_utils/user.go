package test_utils

import (
	"context"
	"testing"

	"github.com/agendum/agendum/pkg/user"
)

const TestUsername = "test_user"

// TestContext returns a context scoped to the standard test user.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	return user.WithUser(context.Background(), TestUsername)
}
