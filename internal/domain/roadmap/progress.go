package roadmap

type StageProgress struct {
	Count          int     `json:"count"`
	CompletedCount int     `json:"completed_count"`
	Percent        float64 `json:"percent"`
}

type ProgressSummary struct {
	Summary        map[Stage]StageProgress `json:"summary"`
	OverallPercent float64                 `json:"overall_percent"`
	TotalItems     int                     `json:"total_items"`
	TotalCompleted int                     `json:"total_completed"`
}
