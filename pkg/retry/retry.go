package retry

// Action is an operation that may be attempted more than once
type Action func() error

// Retrier runs actions under a fixed set of strategies
type Retrier interface {
	Retry(action Action) (uint, error)
}

type strategies []Strategy

// NewRetrier binds strategies for reuse. With no strategies the action is
// attempted until it succeeds.
func NewRetrier(s ...Strategy) Retrier {
	return strategies(s)
}

func (s strategies) Retry(action Action) (uint, error) {
	return Retry(action, s...)
}

// Retry runs action until it succeeds or a strategy declines another
// attempt, returning the number of attempts made. Strategies are consulted in
// order, so ones that sleep belong last.
func Retry(action Action, s ...Strategy) (uint, error) {
	var attempts uint
	for {
		attempts++

		err := action()
		if err == nil || !allow(s, attempts, err) {
			return attempts, err
		}
	}
}

func allow(s []Strategy, attempts uint, err error) bool {
	for _, strategy := range s {
		if !strategy(attempts, err) {
			return false
		}
	}
	return true
}
