package tips

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for tip generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.8,
	}
}
