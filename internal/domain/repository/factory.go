package repository

// Factory describes access to the state store repositories.
type Factory interface {
	Customers() CustomerRepository
	Streaks() StreakRepository
}
