// Package habits holds the ordered habit collection and its per-day views.
package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/potato/internal/constants"
	"github.com/julianstephens/potato/internal/models"
	"github.com/julianstephens/potato/internal/utils"
)

var (
	ErrEmptyTitle = errors.New("habit title cannot be empty")
)

// Group is the habits of one category within a day, in insertion order.
type Group struct {
	Category string
	Habits   []models.Habit
}

// DayView is the filtered, category-grouped slice of the store for one day.
type DayView struct {
	Day       string
	Groups    []Group
	Completed int
	Total     int
	Progress  int
}

// Habits flattens the groups back into display order.
func (v DayView) Habits() []models.Habit {
	out := make([]models.Habit, 0, v.Total)
	for _, g := range v.Groups {
		out = append(out, g.Habits...)
	}
	return out
}

// Store is an ordered collection of habits. It is not safe for concurrent
// use; the tracker serializes access.
type Store struct {
	habits []models.Habit
	newID  func() string
}

// New returns a store holding a copy of initial.
func New(initial []models.Habit) *Store {
	s := &Store{newID: uuid.NewString}
	s.habits = append(make([]models.Habit, 0, len(initial)), initial...)
	return s
}

// Add appends a new, incomplete habit scheduled for day.
func (s *Store) Add(title, category, link, day string) (models.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Habit{}, ErrEmptyTitle
	}
	if !utils.ValidateDate(day) {
		return models.Habit{}, fmt.Errorf("invalid habit date %q, expected YYYY-MM-DD", day)
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = constants.UncategorizedLabel
	}

	id := s.newID()
	for s.index(id) >= 0 {
		id = s.newID()
	}

	h := models.Habit{
		ID:       id,
		Title:    title,
		Date:     day,
		Link:     strings.TrimSpace(link),
		Category: category,
	}
	s.habits = append(s.habits, h)
	return h, nil
}

// Toggle flips the completion flag of the habit with id. It returns the
// updated habit and false when id is unknown.
func (s *Store) Toggle(id string) (models.Habit, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Habit{}, false
	}
	s.habits[i].Completed = !s.habits[i].Completed
	return s.habits[i], true
}

// Remove deletes the habit with id. It returns false when id is unknown.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.habits = append(s.habits[:i], s.habits[i+1:]...)
	return true
}

// Get looks up a habit by id.
func (s *Store) Get(id string) (models.Habit, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Habit{}, false
	}
	return s.habits[i], true
}

// ForDay returns the habits dated day in insertion order.
func (s *Store) ForDay(day string) []models.Habit {
	var out []models.Habit
	for _, h := range s.habits {
		if h.Date == day {
			out = append(out, h)
		}
	}
	return out
}

// ViewForDay groups the day's habits by category. Groups appear in the order
// their category is first seen.
func (s *Store) ViewForDay(day string) DayView {
	view := DayView{Day: day}
	groupIdx := make(map[string]int)

	for _, h := range s.ForDay(day) {
		label := h.CategoryLabel()
		i, ok := groupIdx[label]
		if !ok {
			i = len(view.Groups)
			groupIdx[label] = i
			view.Groups = append(view.Groups, Group{Category: label})
		}
		view.Groups[i].Habits = append(view.Groups[i].Habits, h)

		view.Total++
		if h.Completed {
			view.Completed++
		}
	}

	view.Progress = Progress(view.Completed, view.Total)
	return view
}

// ProgressForDay is the rounded completion percentage for day.
func (s *Store) ProgressForDay(day string) int {
	return s.ViewForDay(day).Progress
}

// All returns a copy of every habit in insertion order.
func (s *Store) All() []models.Habit {
	return append([]models.Habit(nil), s.habits...)
}

func (s *Store) Len() int {
	return len(s.habits)
}

func (s *Store) index(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// Progress returns round(100*completed/total) with halves rounded up, and 0
// when total is 0.
func Progress(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return (200*completed + total) / (2 * total)
}
