package model

// TaskStatus represents the status of a split job or a fetch task
type TaskStatus string

const (
	// TaskStatusPending means the job is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the job is probing and validating input
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusFetching means the source audio is being downloaded
	TaskStatusFetching TaskStatus = "Fetching"

	// TaskStatusExtracting means segments are being cut from the source
	TaskStatusExtracting TaskStatus = "Extracting"

	// TaskStatusStopping means the job is in the process of stopping
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the job was stopped by the user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means every segment was produced successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the job failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the job is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusFetching ||
		ts == TaskStatusExtracting || ts == TaskStatusStopping
}

// IsFinished returns true if the job is in a finished state (completed, stopped, or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}
