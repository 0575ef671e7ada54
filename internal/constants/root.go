package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "potato"
	DefaultKeyringUser = "gemini-api-key"
	DefaultConfigPath  = "~/.config/potato/potato.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage keys for the two persisted records
	HabitsKey = "potatoHabits"
	GrowthKey = "potatoGameStats"

	// UncategorizedLabel replaces a blank habit category
	UncategorizedLabel = "其他"
	DefaultCategory    = "日常"

	// Day strip
	DateStripDays   = 5
	DateStripOffset = 2

	// Watering timings (presentation)
	PourDelay    = 1000 * time.Millisecond
	HarvestDelay = 1500 * time.Millisecond
	SettleDelay  = 1000 * time.Millisecond

	// Motivation
	MotivationDebounce = 1500 * time.Millisecond
	MotivationTimeout  = 10 * time.Second
	DefaultModel       = "gemini-2.5-flash"
	InitialMotivation  = "Let's get started!"
	FallbackNoKey      = "Keep going, you're doing great!"
	FallbackEmpty      = "You got this, spud!"
	FallbackRateLimit  = "You're doing great, sweet potato!"
	FallbackError      = "Small steps lead to big changes!"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "potato-"
)

// Session States
const (
	StateHabits SessionState = iota
	StateGarden
	StateAddHabit
	StateConfirmDelete
)

// Categories offered by the add-habit form, in display order.
var Categories = []string{"日常", "工作", "学习", "生活", "其他"}
