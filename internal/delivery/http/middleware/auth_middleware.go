package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"clinic-cms/internal/service"
	"clinic-cms/pkg/jwt"
	"clinic-cms/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	RoleIDKey    contextKey = "role_id"
	TokenIDKey   contextKey = "token_id"
)

// AdminLoginPath is where unauthenticated admin page requests are sent.
const AdminLoginPath = "/admin/login"

var (
	errNoToken      = errors.New("no token")
	errTokenInvalid = errors.New("invalid or expired token")
	errTokenRevoked = errors.New("token has been revoked")
)

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	sessions   service.SessionStore
	cookieName string
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessions service.SessionStore, cookieName string, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
		cookieName: cookieName,
		log:        log,
	}
}

// Authenticate guards JSON endpoints and answers 401 on failure.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		switch {
		case err == nil:
		case errors.Is(err, errNoToken):
			response.Unauthorized(w, "Authentication required")
			return
		case errors.Is(err, errTokenInvalid):
			response.Unauthorized(w, "Invalid or expired token")
			return
		case errors.Is(err, errTokenRevoked):
			response.Unauthorized(w, "Token has been revoked")
			return
		default:
			response.InternalServerError(w, "Failed to validate token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// AuthenticatePage guards admin HTML pages. Any failure redirects to the
// login page with the original path in ?next=.
func (m *AuthMiddleware) AuthenticatePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.authenticate(r)
		if err != nil {
			http.Redirect(w, r, LoginRedirectURL(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// Claims validates the request's token without rejecting the request.
// The login page uses it to skip the form for signed-in users.
func (m *AuthMiddleware) Claims(r *http.Request) (*jwt.Claims, bool) {
	claims, err := m.authenticate(r)
	return claims, err == nil
}

func (m *AuthMiddleware) authenticate(r *http.Request) (*jwt.Claims, error) {
	tokenString := m.extractToken(r)
	if tokenString == "" {
		return nil, errNoToken
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, errTokenInvalid
	}

	exists, err := m.sessions.Exists(r.Context(), claims.UserID, claims.TokenID)
	if err != nil {
		m.log.Warnf("Failed to check admin session: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, errTokenRevoked
	}

	return claims, nil
}

// extractToken prefers the session cookie and falls back to a Bearer header.
func (m *AuthMiddleware) extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// LoginRedirectURL only keeps local admin paths in ?next=.
func LoginRedirectURL(next string) string {
	if !SafeNext(next) {
		return AdminLoginPath
	}
	return AdminLoginPath + "?next=" + url.QueryEscape(next)
}

// SafeNext reports whether next is a same-site admin path.
func SafeNext(next string) bool {
	return strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "//") && !strings.Contains(next, "\\")
}

// WithClaims stores the authenticated user in ctx.
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	ctx = context.WithValue(ctx, RoleIDKey, claims.RoleID)
	ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)
	return ctx
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}

// GetRoleIDFromContext extracts role ID from context
func GetRoleIDFromContext(ctx context.Context) (int, bool) {
	roleID, ok := ctx.Value(RoleIDKey).(int)
	return roleID, ok
}
