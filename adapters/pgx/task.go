package pgx

import (
	"context"

	"tasktrack"
)

func (a *Adapter) CreateTask(task *tasktrack.Task) error {
	ctx := context.Background()

	query := `INSERT INTO public.tasks (user_id, title, body, due_date) VALUES ($1, $2, $3, $4) RETURNING id, completed, created_at`
	err := a.pool.QueryRow(ctx, query, task.UserID, task.Title, task.Text, task.DueDate).
		Scan(&task.ID, &task.Completed, &task.CreatedAt)
	if err != nil {
		return err
	}
	return nil
}

func (a *Adapter) GetUserTasks(userID int64) ([]*tasktrack.Task, error) {
	ctx := context.Background()
	q := `SELECT t.id, t.user_id, t.title, t.body, t.completed, t.due_date, t.created_at
	        FROM public.tasks t
	        JOIN public.users u ON t.user_id = u.id
	       WHERE u.id = $1
	       ORDER BY t.created_at DESC`

	rows, err := a.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*tasktrack.Task
	for rows.Next() {
		task := &tasktrack.Task{}
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Text,
			&task.Completed, &task.DueDate, &task.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (a *Adapter) SetTaskCompleted(id, userID int64, completed bool) error {
	ctx := context.Background()

	tag, err := a.pool.Exec(ctx,
		`UPDATE public.tasks SET completed = $1 WHERE id = $2 AND user_id = $3`,
		completed, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tasktrack.ErrTaskNotFound
	}
	return nil
}

func (a *Adapter) DeleteTask(id, userID int64) error {
	ctx := context.Background()

	tag, err := a.pool.Exec(ctx,
		`DELETE FROM public.tasks WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return tasktrack.ErrTaskNotFound
	}
	return nil
}
