package synth

import "fmt"

// PointRange is an inclusive range of data point counts.
type PointRange struct {
	Min int
	Max int
}

// Config controls dataset sizes.
type Config struct {
	// Points maps each difficulty to the number of data points drawn per
	// dataset. Difficulties absent from the table are rejected.
	Points map[int]PointRange

	// MaxAttempts bounds redraws for datasets that must satisfy an extra
	// constraint (a non-zero mean for missing_count).
	MaxAttempts int
}

// DefaultConfig returns the standard difficulty table.
func DefaultConfig() Config {
	return Config{
		Points: map[int]PointRange{
			1: {Min: 4, Max: 5},
			2: {Min: 5, Max: 6},
			3: {Min: 6, Max: 8},
			4: {Min: 8, Max: 10},
			5: {Min: 10, Max: 12},
		},
		MaxAttempts: 20,
	}
}

// ErrInvalidDifficulty indicates a difficulty with no entry in the table.
type ErrInvalidDifficulty struct {
	Difficulty int
}

func (e *ErrInvalidDifficulty) Error() string {
	return fmt.Sprintf("invalid difficulty %d", e.Difficulty)
}
