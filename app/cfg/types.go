package cfg

type Cfg struct {
	ConfigPath        string
	Format            string
	IgnoredNamespaces []string
	WorkerCount       int
	Debug             bool
	Files             []string
	Version           string
}
