package config

// Config is the optional YAML file of the feedparse command
type Config struct {
	IgnoredNamespaces []string `yaml:"ignored_namespaces"`
	Filters           []Filter `yaml:"filters"`
}

// Filter represents an entry filter rule
type Filter struct {
	Field    string   `yaml:"field"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}
