package config

// Default paths for the Quran databases
const (
	// DefaultDatabasePath is the default path for the translation database
	DefaultDatabasePath = "./quran.db"

	// DefaultTemplatePath is the bundled pristine copy used to seed the
	// database on first run
	DefaultTemplatePath = "./assets/quran.db"

	// DefaultCacheDir holds temporary downloads during updates
	DefaultCacheDir = "./cache"
)
