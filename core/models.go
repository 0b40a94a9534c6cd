package core

import "time"

// User represents a registered account in the system
//
// This is the "identity" - who someone is
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON (security!)
	CreatedAt    time.Time `json:"register_date"`
}

// Task is a single to-do item owned by a user.
type Task struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"-"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Session is the lightweight per-user handle kept in the registry.
// It carries no credentials; the bearer token remains the source of
// truth for "who is this request".
type Session struct {
	UserID        int64     `json:"userId"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RegisterInput contains the data needed to register a new user
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResult contains the newly created user and their first token.
// WeakPassword is advisory only; registration succeeds regardless.
type RegisterResult struct {
	User         *User  `json:"user"`
	Token        string `json:"token"`
	WeakPassword bool   `json:"-"`
}

// LoginInput contains the credentials for authentication
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult contains the authenticated user and their bearer token
type LoginResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// TaskInput contains the caller-supplied fields of a new task
type TaskInput struct {
	Title   string     `json:"title"`
	Text    string     `json:"text"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// Profile combines user info and task list
// The model returned to clients
type Profile struct {
	User      *User   `json:"user"`
	TaskCount int     `json:"task_count"`
	Tasks     []*Task `json:"tasks"`
}
