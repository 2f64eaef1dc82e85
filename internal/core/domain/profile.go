package domain

// CacheLocation says where a profile's cache directory is anchored.
type CacheLocation string

const (
	// LocationRoot places the cache in a hidden folder inside the root directory.
	LocationRoot CacheLocation = "root"
	// LocationSystem places the cache under the per-user system cache root.
	LocationSystem CacheLocation = "system"
)

// Profile is one named collection job: a directory of workbooks merged
// into a single cached dataset.
type Profile struct {
	Name     string
	RootDir  string
	Glob     string
	Selector SheetSelector
	Format   string // "parquet" or "csv"
	Strategy string // cache strategy token, see cache.ParseStrategy
	Output   string // logical name of the aggregate dataset

	CacheLocation CacheLocation
	CacheDirHint  string
}

// Config is the loaded tabby configuration.
type Config struct {
	Profiles map[string]*Profile
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}
