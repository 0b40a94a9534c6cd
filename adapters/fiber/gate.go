package fiber

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"tasktrack"
	"tasktrack/crypto"
)

// ContextAuthKey is the locals key under which the gate stores the
// verified token for downstream handlers.
const ContextAuthKey = "auth.token"

const (
	apiPrefix    = "/api/"
	bearerPrefix = "Bearer "
)

// publicPaths are the endpoints reachable without a token.
// Exact match, case-sensitive.
var publicPaths = map[string]struct{}{
	"/api/register": {},
	"/api/login":    {},
	"/api/health":   {},
}

// DecisionKind classifies an inbound request before any business
// logic runs.
type DecisionKind int

const (
	// Preflight is a CORS preflight request, answered immediately.
	Preflight DecisionKind = iota
	// StaticAsset is any request outside the API prefix.
	StaticAsset
	// Public is an allow-listed API endpoint.
	Public
	// ProtectedAllowed is a protected request with a valid token.
	ProtectedAllowed
	// ProtectedDenied is a protected request to be rejected.
	ProtectedDenied
)

// Decision is the per-request verdict of the gate. It is never
// persisted.
type Decision struct {
	Kind    DecisionKind
	Subject *crypto.VerifiedToken // set for ProtectedAllowed
	Reason  error                 // set for ProtectedDenied
}

// Classify decides how a request should be handled: pass preflight
// and static traffic through, allow-list the public endpoints, and
// demand a verified bearer token for everything else under the API
// prefix. The 7-character "Bearer " prefix must match literally; a
// shorter or different header is a malformed token, not undefined
// behavior.
func Classify(tokens *crypto.TokenService, method, path, authHeader string) Decision {
	if method == fiber.MethodOptions {
		return Decision{Kind: Preflight}
	}

	if !strings.HasPrefix(path, apiPrefix) {
		return Decision{Kind: StaticAsset}
	}

	if _, ok := publicPaths[path]; ok {
		return Decision{Kind: Public}
	}

	if authHeader == "" {
		return Decision{Kind: ProtectedDenied, Reason: tasktrack.ErrMissingAuthHeader}
	}
	if len(authHeader) < len(bearerPrefix) || authHeader[:len(bearerPrefix)] != bearerPrefix {
		return Decision{Kind: ProtectedDenied, Reason: tasktrack.ErrInvalidAuthHeader}
	}

	verified, err := tokens.Verify(authHeader[len(bearerPrefix):])
	if err != nil {
		return Decision{Kind: ProtectedDenied, Reason: err}
	}

	return Decision{Kind: ProtectedAllowed, Subject: verified}
}

// NewGate builds the middleware every inbound request passes through.
// Rejections collapse to a uniform 401 so verification internals never
// reach the client; the distinct Reason stays available for logging.
func NewGate(tokens *crypto.TokenService) fiber.Handler {
	return func(c fiber.Ctx) error {
		decision := Classify(tokens, c.Method(), c.Path(), c.Get(fiber.HeaderAuthorization))

		switch decision.Kind {
		case Preflight:
			return c.SendStatus(http.StatusOK)

		case ProtectedDenied:
			message := "Invalid or expired token"
			if decision.Reason == tasktrack.ErrMissingAuthHeader {
				message = "Authorization header required"
			}
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": message,
			})

		case ProtectedAllowed:
			c.Locals(ContextAuthKey, decision.Subject)
			return c.Next()

		default: // Public, StaticAsset
			return c.Next()
		}
	}
}

// subjectFromContext returns the verified token the gate stored, or
// nil if the route was not protected.
func subjectFromContext(c fiber.Ctx) *crypto.VerifiedToken {
	subject, _ := c.Locals(ContextAuthKey).(*crypto.VerifiedToken)
	return subject
}
