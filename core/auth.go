package core

import (
	"fmt"
	"time"
)

// AuthService implements registration, login, and identity resolution
// on top of the storage and crypto ports.
type AuthService struct {
	db       UserStorage
	hasher   PasswordHasher
	tokens   TokenIssuer
	registry *SessionRegistry
}

func NewAuthService(db UserStorage, hasher PasswordHasher, tokens TokenIssuer, registry *SessionRegistry) *AuthService {
	return &AuthService{
		db:       db,
		hasher:   hasher,
		tokens:   tokens,
		registry: registry,
	}
}

// Register creates a new user account.
//
// A weak password does not block registration; the verdict is carried
// back to the caller as a warning.
func (s *AuthService) Register(input RegisterInput) (*RegisterResult, error) {
	if input.Username == "" {
		return nil, ErrUsernameRequired
	}
	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	// Step 1: Check if the username or email is already taken
	if existing, err := s.db.GetUserByName(input.Username); err != nil && err != ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	} else if existing != nil {
		return nil, ErrUserExists
	}
	if existing, err := s.db.GetUserByEmail(input.Email); err != nil && err != ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	} else if existing != nil {
		return nil, ErrUserExists
	}

	// Step 2: Score the password; advisory only
	weak := !s.hasher.IsStrong(input.Password)

	// Step 3: Hash the password
	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 4: Create the user
	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashed,
	}
	if err := s.db.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Step 5: Register a session handle and issue the first token
	s.registry.Put(user.ID, &Session{
		UserID:        user.ID,
		Authenticated: true,
		CreatedAt:     time.Now(),
	})

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &RegisterResult{
		User:         user,
		Token:        token,
		WeakPassword: weak,
	}, nil
}

// Login authenticates a user with username and password
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	// Step 1: Find the user by username
	user, err := s.db.GetUserByName(input.Username)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 2: Verify the password against the stored hash
	valid, err := s.hasher.Verify(user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	// Step 3: Issue a bearer token and register the session handle
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.registry.Put(user.ID, &Session{
		UserID:        user.ID,
		Authenticated: true,
		CreatedAt:     time.Now(),
	})

	return &LoginResult{
		User:  user,
		Token: token,
	}, nil
}

// Logout acknowledges the end of a session. Tokens are self-contained
// and cannot be revoked, and registry entries live for the process
// lifetime, so there is nothing to tear down.
func (s *AuthService) Logout(userID int64) error {
	return nil
}

// Resolve returns the session handle for an authenticated user,
// re-resolving the identity from the store when the registry has no
// entry for it.
func (s *AuthService) Resolve(userID int64) (*Session, error) {
	if session, ok := s.registry.Get(userID); ok {
		return session, nil
	}

	user, err := s.db.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	session := &Session{
		UserID:        user.ID,
		Authenticated: true,
		CreatedAt:     time.Now(),
	}
	s.registry.Put(user.ID, session)
	return session, nil
}
