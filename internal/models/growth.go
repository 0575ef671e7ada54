package models

// GrowthState is the persisted potato record.
type GrowthState struct {
	HarvestCount    int    `json:"harvestCount"`
	GrowthStage     int    `json:"growthStage"`
	LastWateredDate string `json:"lastWateredDate"`
}

// WateredOn reports whether the last successful watering happened on day.
func (g GrowthState) WateredOn(day string) bool {
	return g.LastWateredDate != "" && g.LastWateredDate == day
}
