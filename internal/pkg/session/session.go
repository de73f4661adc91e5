package session

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/ManuelReschke/ConnectX/internal/pkg/cache"
	"github.com/ManuelReschke/ConnectX/internal/pkg/env"
)

var sessionStore *session.Store

func NewSessionStore() *session.Store {
	return UseStore(session.New(session.Config{
		Storage:        cache.Storage(cache.DBSessions),
		CookieHTTPOnly: true,
		CookieSecure:   !env.IsDev(),
		CookieSameSite: "Lax",
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:connectx_session",
	}))
}

// UseStore replaces the package store; tests install an in-memory store here.
func UseStore(store *session.Store) *session.Store {
	sessionStore = store
	return sessionStore
}

func GetSessionStore() *session.Store {
	return sessionStore
}

// SetSessionValue stores a key-value pair in the user's individual session
func SetSessionValue(c *fiber.Ctx, key string, value string) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %v", err)
	}

	sess.Set(key, value)
	return sess.Save()
}

// SetSessionValues stores several values with a single save.
func SetSessionValues(c *fiber.Ctx, values map[string]string) error {
	if sessionStore == nil {
		return fmt.Errorf("session store not initialized")
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return fmt.Errorf("failed to get session: %v", err)
	}

	for k, v := range values {
		sess.Set(k, v)
	}
	return sess.Save()
}

// Destroy drops the user's session entirely.
func Destroy(c *fiber.Ctx) error {
	if sessionStore == nil {
		return nil
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// GetSessionValue retrieves a value by key from the user's individual session
func GetSessionValue(c *fiber.Ctx, key string) string {
	if sessionStore == nil {
		return ""
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return ""
	}

	if strValue, ok := sess.Get(key).(string); ok {
		return strValue
	}

	return ""
}

// PopSessionValue reads a value and removes it in the same round trip.
func PopSessionValue(c *fiber.Ctx, key string) string {
	if sessionStore == nil {
		return ""
	}

	sess, err := sessionStore.Get(c)
	if err != nil {
		return ""
	}

	value, _ := sess.Get(key).(string)
	sess.Delete(key)
	_ = sess.Save()
	return value
}
