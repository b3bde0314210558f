package commands

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
	"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
)

// CancelStaleOrdersCommand represents a request to cancel every order that
// has stayed in Pending status longer than the given time to live.
// Issued periodically by the background job manager.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to sweep stale orders.
// The time to live must be positive.
func NewCancelStaleOrdersCommand(ttl time.Duration) (CancelStaleOrdersCommand, error) {
	staleCommand := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := staleCommand.setTTL(ttl); err != nil {
		return CancelStaleOrdersCommand{}, err
	}

	return staleCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// TTL returns how long an order may stay Pending before it is cancelled.
func (c CancelStaleOrdersCommand) TTL() time.Duration {
	return c.ttl
}

func (c *CancelStaleOrdersCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("ttl", fmt.Errorf("%s is not greater than 0", ttl))
	}

	c.ttl = ttl
	return nil
}
