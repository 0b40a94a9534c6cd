package core

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS (Database operations)
// ============================================

// UserStorage defines user-related database operations
type UserStorage interface {
	CreateUser(u *User) error
	GetUserByID(id int64) (*User, error)
	GetUserByName(username string) (*User, error)
	GetUserByEmail(email string) (*User, error)
}

// TaskStorage defines task-related database operations
type TaskStorage interface {
	CreateTask(t *Task) error
	GetUserTasks(userID int64) ([]*Task, error)
	SetTaskCompleted(id, userID int64, completed bool) error
	DeleteTask(id, userID int64) error
}

type Storage interface {
	UserStorage
	TaskStorage
}

// ============================================
// CRYPTO PORTS
// ============================================

// PasswordHasher provides one-way password hashing and strength advice.
// The hash argument to Verify is the self-describing encoded record
// produced by Hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encodedHash, password string) (bool, error)
	IsStrong(password string) bool
}

// TokenIssuer mints a signed bearer token for an authenticated subject.
type TokenIssuer interface {
	Issue(userID int64, username string) (string, error)
}
