package bucket

// Config drives one token bucket. Capacity and RefillRate typically come
// from a parsed quota phrase: capacity tokens, replenished at RefillRate
// tokens per second.
type Config struct {
	Key        string
	Capacity   int     // maximum tokens the bucket can hold
	RefillRate float64 // tokens added per second
}

func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return NewInvalidCapacityError(c.Capacity)
	}
	if c.RefillRate <= 0 {
		return NewInvalidRefillRateError(c.RefillRate)
	}
	return nil
}
