package core

import (
	"sync"
	"time"
)

// FakeStorage is a test-only in-memory implementation of Storage.
// It keeps users and tasks in maps and exposes error fields for
// behavior injection.
type FakeStorage struct {
	mu         sync.RWMutex
	users      map[int64]*User
	tasks      map[int64]*Task
	nextUserID int64
	nextTaskID int64

	createUserErr error
	getUserErr    error
	createTaskErr error
	getTasksErr   error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		users: make(map[int64]*User),
		tasks: make(map[int64]*Task),
	}
}

func (f *FakeStorage) CreateUser(u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createUserErr != nil {
		return f.createUserErr
	}

	f.nextUserID++
	u.ID = f.nextUserID
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return nil
}

func (f *FakeStorage) GetUserByID(id int64) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *FakeStorage) GetUserByName(username string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeStorage) GetUserByEmail(email string) (*User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getUserErr != nil {
		return nil, f.getUserErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *FakeStorage) CreateTask(t *Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createTaskErr != nil {
		return f.createTaskErr
	}

	f.nextTaskID++
	t.ID = f.nextTaskID
	t.CreatedAt = time.Now()
	f.tasks[t.ID] = t
	return nil
}

func (f *FakeStorage) GetUserTasks(userID int64) ([]*Task, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getTasksErr != nil {
		return nil, f.getTasksErr
	}
	var tasks []*Task
	for _, t := range f.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (f *FakeStorage) SetTaskCompleted(id, userID int64, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return ErrTaskNotFound
	}
	t.Completed = completed
	return nil
}

func (f *FakeStorage) DeleteTask(id, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok || t.UserID != userID {
		return ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

// fakeHasher is a deterministic PasswordHasher for service tests; the
// argon2 implementation has its own suite and is too slow to run on
// every service case.
type fakeHasher struct {
	hashErr error
	weak    bool
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(encodedHash, password string) (bool, error) {
	return encodedHash == "hashed:"+password, nil
}

func (h *fakeHasher) IsStrong(password string) bool {
	return !h.weak
}

// fakeIssuer is a deterministic TokenIssuer for service tests.
type fakeIssuer struct {
	issueErr error
}

func (i *fakeIssuer) Issue(userID int64, username string) (string, error) {
	if i.issueErr != nil {
		return "", i.issueErr
	}
	return "token-for-" + username, nil
}
