package inbound

type taskPayload struct {
	ID          int64  `json:"id,string"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Time        string `json:"time"`
	Date        string `json:"date"`
}

type CreateTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Time        string `json:"time"`
	Date        string `json:"date"`
}

type CreateTaskResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Task    taskPayload `json:"task"`
}

type ListTasksResponse struct {
	Success bool          `json:"success"`
	Tasks   []taskPayload `json:"tasks"`
}

type DeleteTaskResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
