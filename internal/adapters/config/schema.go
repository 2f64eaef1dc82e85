package config

// Tabbyfile represents the structure of the tabby.yaml configuration file.
type Tabbyfile struct {
	Version  string                `yaml:"version"`
	Profiles map[string]ProfileDTO `yaml:"profiles"`
}

// ProfileDTO represents a collection profile in the configuration.
type ProfileDTO struct {
	Root          string `yaml:"root"`
	Glob          string `yaml:"glob"`
	Sheet         string `yaml:"sheet"`
	Format        string `yaml:"format"`
	Strategy      string `yaml:"strategy"`
	Output        string `yaml:"output"`
	CacheLocation string `yaml:"cacheLocation"`
	CacheDir      string `yaml:"cacheDir"`
}
