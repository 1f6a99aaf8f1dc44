package cfg

type Cfg struct {
	// Application configuration
	FeedsDir  string
	DataDir   string
	CacheFile string
	DBPath    string
	Port      string

	// Sync behavior
	SyncInterval int // seconds between scheduled sync runs
	FetchTimeout int // seconds per feed request
	FeedDelay    int // milliseconds between feed requests
	SyncOnce     bool

	// HTTP / API
	APIAccessKey string
	UserAgent    string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
