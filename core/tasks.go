package core

import "fmt"

// TaskService implements task CRUD for authenticated users. Every
// operation is scoped to the owning user; a task ID belonging to
// someone else behaves as if it did not exist.
type TaskService struct {
	db   Storage
	auth *AuthService
}

func NewTaskService(db Storage, auth *AuthService) *TaskService {
	return &TaskService{db: db, auth: auth}
}

// Add creates a new task for the user
func (s *TaskService) Add(userID int64, input TaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	task := &Task{
		UserID:  userID,
		Title:   input.Title,
		Text:    input.Text,
		DueDate: input.DueDate,
	}
	if err := s.db.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// List returns the user's tasks, newest first
func (s *TaskService) List(userID int64) ([]*Task, error) {
	tasks, err := s.db.GetUserTasks(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// SetCompleted updates the completion status of a task
func (s *TaskService) SetCompleted(taskID, userID int64, completed bool) error {
	if err := s.db.SetTaskCompleted(taskID, userID, completed); err != nil {
		return err
	}
	return nil
}

// Delete removes a task owned by the user
func (s *TaskService) Delete(taskID, userID int64) error {
	return s.db.DeleteTask(taskID, userID)
}

// Profile returns the user's identity and task list
func (s *TaskService) Profile(userID int64) (*Profile, error) {
	if _, err := s.auth.Resolve(userID); err != nil {
		return nil, err
	}

	user, err := s.db.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.db.GetUserTasks(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return &Profile{
		User:      user,
		TaskCount: len(tasks),
		Tasks:     tasks,
	}, nil
}
