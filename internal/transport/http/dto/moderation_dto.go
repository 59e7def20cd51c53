package dto

type TransitionRequest struct {
	EntityType string  `json:"entity_type"`
	ID         int64   `json:"id"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
}

type BulkActionRequest struct {
	EntityType string  `json:"entity_type"`
	IDs        []int64 `json:"ids"`
	Operation  string  `json:"operation,omitempty"`
	Status     string  `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type BulkActionResponse struct {
	EntityType string `json:"entity_type"`
	Status     string `json:"status,omitempty"`
	Affected   int64  `json:"affected"`
}
