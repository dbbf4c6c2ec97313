package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// CookieName is the browser cookie holding the signed session ID.
const CookieName = "aapna_session"

type Store struct {
	client *goredis.Client
	secret []byte
	ttl    time.Duration
}

func NewStore(client *goredis.Client, secret []byte, ttl time.Duration) *Store {
	return &Store{client: client, secret: secret, ttl: ttl}
}

func (st *Store) TTL() time.Duration { return st.ttl }

// New creates and persists an empty session.
func (st *Store) New(ctx context.Context) (*Session, error) {
	sess := &Session{ID: uuid.NewString()}
	if err := st.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Save writes the session record to Redis, refreshing its TTL.
func (st *Store) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := st.client.Set(ctx, sessionKey(sess.ID), data, st.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Load resolves a cookie value back to its server-side session. Any failure
// (bad signature, expired token, missing Redis record) yields an error; the
// caller starts a fresh session.
func (st *Store) Load(ctx context.Context, cookieValue string) (*Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookieValue, claims, func(token *jwt.Token) (any, error) {
		return st.secret, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return nil, fmt.Errorf("invalid session cookie")
	}

	data, err := st.client.Get(ctx, sessionKey(claims.SessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Destroy invalidates the session server-side.
func (st *Store) Destroy(ctx context.Context, sess *Session) error {
	if err := st.client.Del(ctx, sessionKey(sess.ID), flashKey(sess.ID)).Err(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// CookieValue signs the session ID into the cookie payload.
func (st *Store) CookieValue(sess *Session) (string, error) {
	claims := sessionClaims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(st.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(st.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// Flash queues a one-shot message for the session's next rendered page.
// Failures are logged by callers at most; a lost flash is not an error the
// user should see.
func (st *Store) Flash(ctx context.Context, sess *Session, level, message string) error {
	data, err := json.Marshal(Flash{Level: level, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal flash: %w", err)
	}
	key := flashKey(sess.ID)
	pipe := st.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, st.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to queue flash: %w", err)
	}
	return nil
}

// PopFlashes drains and returns the queued flash messages.
func (st *Store) PopFlashes(ctx context.Context, sess *Session) []Flash {
	key := flashKey(sess.ID)
	pipe := st.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil
	}
	var flashes []Flash
	for _, raw := range rangeCmd.Val() {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err == nil {
			flashes = append(flashes, f)
		}
	}
	return flashes
}

var _ Manager = (*Store)(nil)

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

func sessionKey(id string) string { return "session:" + id }

func flashKey(id string) string { return "flash:" + id }
