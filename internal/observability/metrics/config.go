package metrics

// Config labels metric instruments with service identity.
type Config struct {
	ServiceName string
	Environment string
}
