package constants

import "time"

const (
	AppName            = "daybook"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daybook/daybook.db"
	Version            = "v0.3.1"

	// DateFormat is the standard calendar-day format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Local cache keys. Per-owner keys are derived by appending "_<ownerID>";
	// the bare key is the anonymous-mode fallback.
	EntriesKey           = "diary_entries"
	HealthKeyPrefix      = "health_data"
	HabitsKeyPrefix      = "@daily_habits"
	CompletionsKeyPrefix = "@daily_habit_entries"
	AchievementsKey      = "@daily_achievements"
	UserStatsKey         = "@daily_user_stats"

	// Streak and wellness bounds
	LongestStreakWindowDays = 365
	MaxWellnessScore        = 100

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "daybook-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.daybook.tray"

	// EnvRemoteConnection is the environment variable consulted for the remote
	// store connection string before falling back to the OS keyring.
	EnvRemoteConnection = "DAYBOOK_DB_CONNECTION"
)
