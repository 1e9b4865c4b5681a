// Package session implements cookie-carried, server-side sessions. The
// browser holds an HMAC-signed opaque session id; all user state lives in the
// Store. Sessions are created on login/registration, checked by the session
// gate, and destroyed on logout; they are never extended mid-request.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no session established")

type Manager struct {
	store      Store
	secret     []byte
	CookieName string
	Domain     string
	Secure     bool
	TTL        time.Duration
}

func NewManager(store Store, secret, cookieName, domain string, secure bool, ttl time.Duration) *Manager {
	return &Manager{
		store:      store,
		secret:     []byte(secret),
		CookieName: cookieName,
		Domain:     domain,
		Secure:     secure,
		TTL:        ttl,
	}
}

// sign produces the cookie value for a session id: "<sid>.<base64url sig>".
// Same shape express-session uses, so a tampered or forged id fails fast
// without a store round trip.
func (m *Manager) sign(sid string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sid))
	return sid + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify splits and checks a cookie value, returning the session id.
func (m *Manager) verify(cookieVal string) (string, bool) {
	i := strings.LastIndexByte(cookieVal, '.')
	if i <= 0 {
		return "", false
	}
	sid := cookieVal[:i]
	if hmac.Equal([]byte(m.sign(sid)), []byte(cookieVal)) {
		return sid, true
	}
	return "", false
}

// Establish creates a new session for the given identity, persists it and
// sets the session cookie. Returns the session id.
func (m *Manager) Establish(c *gin.Context, data Data) (string, error) {
	sid := uuid.NewString()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = time.Now().UTC()
	}
	if err := m.store.Set(c.Request.Context(), sid, data, m.TTL); err != nil {
		return "", err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.CookieName, m.sign(sid), int(m.TTL.Seconds()), "/", m.Domain, m.Secure, true)
	return sid, nil
}

// Current resolves the request's session, if any. A missing cookie, bad
// signature or absent store record all read as "no session".
func (m *Manager) Current(c *gin.Context) (Data, bool, error) {
	cookieVal, err := c.Cookie(m.CookieName)
	if err != nil || cookieVal == "" {
		return Data{}, false, nil
	}
	sid, ok := m.verify(cookieVal)
	if !ok {
		return Data{}, false, nil
	}
	return m.store.Get(c.Request.Context(), sid)
}

// Destroy deletes the session store-side and clears the cookie. A failed
// store delete is returned as an error so logout never reports success for a
// session that still exists.
func (m *Manager) Destroy(c *gin.Context) error {
	cookieVal, err := c.Cookie(m.CookieName)
	if err != nil || cookieVal == "" {
		return ErrNoSession
	}
	sid, ok := m.verify(cookieVal)
	if !ok {
		return ErrNoSession
	}
	if err := m.store.Delete(c.Request.Context(), sid); err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.CookieName, "", -1, "/", m.Domain, m.Secure, true)
	return nil
}
