package status

type Config struct {
	// RootAnyMethod answers the root path for every http method
	// instead of GET only.
	RootAnyMethod bool `conf:"root_any_method"`
}

var DefaultConfig = Config{
	RootAnyMethod: true,
}
