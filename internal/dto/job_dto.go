package dto

type ProcessReportsResponse struct {
	Success        bool `json:"success"`
	ProcessedCount int  `json:"processed_count"`
}

type ReconcileMissionsResponse struct {
	Success        bool `json:"success"`
	CompletedCount int  `json:"completed_count"`
}
