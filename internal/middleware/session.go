package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keshavkalani15/Aapna-Bank/internal/session"
)

// SessionContextKey is where Sessions stores the request session.
const SessionContextKey = "session"

// Sessions resolves the request's server-side session, creating one (and
// setting the cookie) when none exists. Every route runs behind this.
func Sessions(store session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *session.Session
		if cookie, err := c.Cookie(session.CookieName); err == nil {
			if loaded, err := store.Load(ctx, cookie); err == nil {
				sess = loaded
			}
		}
		if sess == nil {
			created, err := store.New(ctx)
			if err != nil {
				log.Printf("Failed to create session: %v", err)
				c.String(http.StatusInternalServerError, "Service temporarily unavailable.")
				c.Abort()
				return
			}
			value, err := store.CookieValue(created)
			if err != nil {
				log.Printf("Failed to sign session cookie: %v", err)
				c.String(http.StatusInternalServerError, "Service temporarily unavailable.")
				c.Abort()
				return
			}
			c.SetCookie(session.CookieName, value, int(store.TTL().Seconds()), "/", "", false, true)
			sess = created
		}

		c.Set(SessionContextKey, sess)
		c.Next()
	}
}

// CurrentSession returns the session placed by Sessions. It panics when the
// middleware is missing from the chain; that is a wiring bug, not a runtime
// condition.
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(SessionContextKey).(*session.Session)
}

// RequireCustomer redirects to the customer login page when the session
// holds no customer identity.
func RequireCustomer(store session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.CustomerLoggedIn() {
			store.Flash(c.Request.Context(), sess, "error", "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireManager redirects to the manager login page when the session holds
// no manager identity.
func RequireManager(store session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if !sess.ManagerLoggedIn() {
			store.Flash(c.Request.Context(), sess, "error", "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/manager/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
