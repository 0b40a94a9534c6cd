package core

import (
	"errors"
	"testing"
)

func newTestAuthService(db *FakeStorage, hasher PasswordHasher) (*AuthService, *SessionRegistry) {
	registry := NewSessionRegistry(RegistryConfig{})
	if hasher == nil {
		hasher = &fakeHasher{}
	}
	return NewAuthService(db, hasher, &fakeIssuer{}, registry), registry
}

// Requirement: Register creates a new user, stores only the hashed
// password, and populates the session registry.
func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		input    RegisterInput
		setup    func(*FakeStorage) // optional setup before Register
		wantErr  error
		wantUser bool
	}{
		{
			name:     "creates user for valid input",
			input:    RegisterInput{Username: "alice", Email: "alice@example.com", Password: "SecurePass123!"},
			wantUser: true,
		},
		{
			name:    "returns error for empty username",
			input:   RegisterInput{Email: "alice@example.com", Password: "SecurePass123!"},
			wantErr: ErrUsernameRequired,
		},
		{
			name:    "returns error for empty email",
			input:   RegisterInput{Username: "alice", Password: "SecurePass123!"},
			wantErr: ErrEmailRequired,
		},
		{
			name:    "returns error for empty password",
			input:   RegisterInput{Username: "alice", Email: "alice@example.com"},
			wantErr: ErrPasswordRequired,
		},
		{
			name:  "returns error for duplicate username",
			input: RegisterInput{Username: "alice", Email: "new@example.com", Password: "SecurePass123!"},
			setup: func(db *FakeStorage) {
				_ = db.CreateUser(&User{Username: "alice", Email: "alice@example.com"})
			},
			wantErr: ErrUserExists,
		},
		{
			name:  "returns error for duplicate email",
			input: RegisterInput{Username: "bob", Email: "alice@example.com", Password: "SecurePass123!"},
			setup: func(db *FakeStorage) {
				_ = db.CreateUser(&User{Username: "alice", Email: "alice@example.com"})
			},
			wantErr: ErrUserExists,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			db := NewFakeStorage()
			if test.setup != nil {
				test.setup(db)
			}
			service, registry := newTestAuthService(db, nil)

			// Act
			result, err := service.Register(test.input)

			// Assert
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Register() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if test.wantUser {
				if result.User == nil || result.User.ID == 0 {
					t.Fatal("Register() should return a stored user with an ID")
				}
				if result.User.PasswordHash == test.input.Password {
					t.Error("Register() must never store the plaintext password")
				}
				if result.Token == "" {
					t.Error("Register() should return a token")
				}
				if _, ok := registry.Get(result.User.ID); !ok {
					t.Error("Register() should populate the session registry")
				}
			}
		})
	}
}

// Requirement: a weak password does not block registration but the
// result carries a warning.
func TestAuthService_Register_WeakPasswordWarns(t *testing.T) {
	// Arrange
	db := NewFakeStorage()
	service, _ := newTestAuthService(db, &fakeHasher{weak: true})

	// Act
	result, err := service.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "weak",
	})

	// Assert
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !result.WeakPassword {
		t.Error("Register() should flag a weak password")
	}
	if result.User == nil {
		t.Fatal("Register() should still create the user")
	}
}

// Requirement: Login verifies credentials against the stored hash and
// issues a token; failures collapse to ErrInvalidCredentials.
func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "alice", password: "SecurePass123!"},
		{name: "wrong password", username: "alice", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "mallory", password: "SecurePass123!", wantErr: ErrInvalidCredentials},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			db := NewFakeStorage()
			service, registry := newTestAuthService(db, nil)
			if _, err := service.Register(RegisterInput{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "SecurePass123!",
			}); err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			registry.Clear()

			// Act
			result, err := service.Login(LoginInput{Username: test.username, Password: test.password})

			// Assert
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if result.Token == "" {
				t.Error("Login() should return a token")
			}
			if _, ok := registry.Get(result.User.ID); !ok {
				t.Error("Login() should populate the session registry")
			}
		})
	}
}

// Requirement: Resolve falls back to the store when the registry has
// no entry, and repopulates it.
func TestAuthService_Resolve(t *testing.T) {
	// Arrange
	db := NewFakeStorage()
	service, registry := newTestAuthService(db, nil)
	result, err := service.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	registry.Clear()

	// Act
	session, err := service.Resolve(result.User.ID)

	// Assert
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if session.UserID != result.User.ID || !session.Authenticated {
		t.Errorf("Resolve() = %+v, want authenticated session for user %d", session, result.User.ID)
	}
	if _, ok := registry.Get(result.User.ID); !ok {
		t.Error("Resolve() should repopulate the registry")
	}

	// Unknown subjects stay errors
	if _, err := service.Resolve(9999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Resolve(unknown) error = %v, want ErrUserNotFound", err)
	}
}

// Requirement: Logout is a no-op acknowledgment; the registry entry
// survives for the process lifetime.
func TestAuthService_Logout(t *testing.T) {
	// Arrange
	db := NewFakeStorage()
	service, registry := newTestAuthService(db, nil)
	result, err := service.Register(RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass123!",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Act
	if err := service.Logout(result.User.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	// Assert
	if _, ok := registry.Get(result.User.ID); !ok {
		t.Error("Logout() should not evict the registry entry")
	}
}
