package metrics

type Config struct {
	Host string `conf:"host"`

	// Port of the metrics listener. Zero disables it.
	Port int `conf:"port"`
}
