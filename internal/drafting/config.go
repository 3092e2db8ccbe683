package drafting

// Config controls a drafting Service.
type Config struct {
	// MaxTokens caps the response of each provider call.
	MaxTokens int

	// Temperature is passed through to the provider. Zero keeps the
	// provider default.
	Temperature float64

	// MaxRepairs is how many times a rejected draft is sent back to the
	// model together with the rejection reason.
	MaxRepairs int

	// CheckSeed seeds the trial generation run against every draft.
	CheckSeed uint64
}

// DefaultConfig returns the recommended drafting settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
		MaxRepairs:  1,
		CheckSeed:   1,
	}
}
