package habits

import "github.com/julianstephens/potato/internal/models"

// Seed returns the sample habits shown on a fresh install, dated day.
func Seed(day string) []models.Habit {
	return []models.Habit{
		{ID: "1", Title: "Read for 30 mins", Date: day, Category: "学习"},
		{ID: "2", Title: "Meditate", Date: day, Category: "日常"},
		{ID: "3", Title: "Drink 8 cups of water", Completed: true, Date: day, Category: "生活"},
		{ID: "4", Title: "Morning Run 5km", Date: day, Link: "Strava", Category: "生活"},
		{ID: "5", Title: "Complete project report", Date: day, Category: "工作"},
	}
}
