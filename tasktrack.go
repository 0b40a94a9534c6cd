package tasktrack

import (
	"fmt"
	"time"

	"tasktrack/core"
	"tasktrack/crypto"
)

// interfaces
type (
	Storage        = core.Storage
	UserStorage    = core.UserStorage
	TaskStorage    = core.TaskStorage
	PasswordHasher = core.PasswordHasher
)

// structs
type (
	User    = core.User
	Task    = core.Task
	Session = core.Session
	Profile = core.Profile

	RegisterInput  = core.RegisterInput
	RegisterResult = core.RegisterResult
	LoginInput     = core.LoginInput
	LoginResult    = core.LoginResult
	TaskInput      = core.TaskInput

	VerifiedToken = crypto.VerifiedToken
)

const (
	defaultIssuer    = "tasktrack"
	defaultTokenTTL  = time.Hour
	defaultSecretLen = 32
)

var (
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrTaskNotFound       = core.ErrTaskNotFound

	ErrMissingAuthHeader = core.ErrMissingAuthHeader
	ErrInvalidAuthHeader = core.ErrInvalidAuthHeader

	ErrStorageRequired = core.ErrStorageRequired
	ErrSecretRequired  = core.ErrSecretRequired
	ErrSecretTooShort  = core.ErrSecretTooShort
)

// Config assembles the collaborators of an App. Secret and Storage
// are required; everything else has defaults.
type Config struct {
	Secret  string
	Storage core.Storage

	// Optional config
	Issuer      string
	TokenTTL    time.Duration
	RegistryTTL time.Duration
	Argon2      *crypto.Argon2Params
}

// App is the composition root: one instance per process, passed by
// reference to every handler. It replaces the hidden global singletons
// a naive design would reach for.
type App struct {
	Auth     *core.AuthService
	Tasks    *core.TaskService
	Vault    *crypto.Vault
	Tokens   *crypto.TokenService
	Registry *core.SessionRegistry
}

func New(config Config) (*App, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Storage == nil {
		return nil, ErrStorageRequired
	}

	// Set Defaults

	issuer := config.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}

	tokenTTL := config.TokenTTL
	if tokenTTL == 0 {
		tokenTTL = defaultTokenTTL
	}

	params := crypto.InteractiveParams()
	if config.Argon2 != nil {
		params = *config.Argon2
	}

	vault := crypto.NewVault(params)
	if err := vault.Initialize(); err != nil {
		return nil, fmt.Errorf("vault initialization failed: %w", err)
	}

	tokens := crypto.NewTokenService(crypto.TokenConfig{
		Issuer: issuer,
		Secret: []byte(config.Secret),
		TTL:    tokenTTL,
	})

	registry := core.NewSessionRegistry(core.RegistryConfig{TTL: config.RegistryTTL})

	auth := core.NewAuthService(config.Storage, vault, tokens, registry)
	tasks := core.NewTaskService(config.Storage, auth)

	return &App{
		Auth:     auth,
		Tasks:    tasks,
		Vault:    vault,
		Tokens:   tokens,
		Registry: registry,
	}, nil
}
