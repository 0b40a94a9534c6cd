package fiber

import (
	"net/http"
	"testing"
	"time"

	"tasktrack/crypto"
)

func newGateTokenService() *crypto.TokenService {
	return crypto.NewTokenService(crypto.TokenConfig{
		Issuer: "tasktrack",
		Secret: []byte("gate-test-secret"),
		TTL:    time.Hour,
	})
}

// Requirement: the gate classifies every request before any business
// logic runs: preflight is answered, static and public traffic is
// forwarded, and everything else under /api/ needs a verified bearer
// token.
func TestClassify(t *testing.T) {
	tokens := newGateTokenService()
	valid, err := tokens.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name       string
		method     string
		path       string
		authHeader string
		wantKind   DecisionKind
	}{
		{name: "preflight", method: http.MethodOptions, path: "/api/tasks", wantKind: Preflight},
		{name: "static root", method: http.MethodGet, path: "/", wantKind: StaticAsset},
		{name: "static asset", method: http.MethodGet, path: "/js/app.js", wantKind: StaticAsset},
		{name: "static regardless of header", method: http.MethodGet, path: "/js/app.js", authHeader: "Bearer garbage", wantKind: StaticAsset},
		{name: "public login", method: http.MethodPost, path: "/api/login", wantKind: Public},
		{name: "public register", method: http.MethodPost, path: "/api/register", wantKind: Public},
		{name: "public health", method: http.MethodGet, path: "/api/health", wantKind: Public},
		{name: "allow-list is exact match", method: http.MethodGet, path: "/api/login/extra", wantKind: ProtectedDenied},
		{name: "protected without header", method: http.MethodGet, path: "/api/tasks", wantKind: ProtectedDenied},
		{name: "protected with short header", method: http.MethodGet, path: "/api/tasks", authHeader: "Basic", wantKind: ProtectedDenied},
		{name: "protected with wrong scheme", method: http.MethodGet, path: "/api/tasks", authHeader: "Basic dXNlcjpwYXNz", wantKind: ProtectedDenied},
		{name: "protected with garbage token", method: http.MethodGet, path: "/api/tasks", authHeader: "Bearer garbage", wantKind: ProtectedDenied},
		{name: "protected with valid token", method: http.MethodGet, path: "/api/tasks", authHeader: "Bearer " + valid, wantKind: ProtectedAllowed},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Act
			decision := Classify(tokens, test.method, test.path, test.authHeader)

			// Assert
			if decision.Kind != test.wantKind {
				t.Fatalf("Classify() kind = %v, want %v", decision.Kind, test.wantKind)
			}
			if test.wantKind == ProtectedAllowed {
				if decision.Subject == nil || decision.Subject.UserID() != 42 {
					t.Errorf("Classify() subject = %+v, want verified user 42", decision.Subject)
				}
			}
			if test.wantKind == ProtectedDenied && decision.Reason == nil {
				t.Error("Classify() denied decisions must carry a reason")
			}
		})
	}
}

// Requirement: an expired token is denied even though it parses.
func TestClassify_ExpiredToken(t *testing.T) {
	// Arrange
	expiredIssuer := crypto.NewTokenService(crypto.TokenConfig{
		Issuer: "tasktrack",
		Secret: []byte("gate-test-secret"),
		TTL:    -1 * time.Second,
	})
	token, err := expiredIssuer.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Act
	decision := Classify(newGateTokenService(), http.MethodGet, "/api/tasks", "Bearer "+token)

	// Assert
	if decision.Kind != ProtectedDenied {
		t.Fatalf("Classify() kind = %v, want ProtectedDenied", decision.Kind)
	}
	if decision.Reason != crypto.ErrTokenExpired {
		t.Errorf("Classify() reason = %v, want ErrTokenExpired", decision.Reason)
	}
}
