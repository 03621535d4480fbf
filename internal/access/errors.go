package access

import (
	"errors"
	"fmt"

	"github.com/bissquit/rolechain/internal/domain"
)

// Lookup errors.
var (
	ErrUserNotFound = errors.New("user not found")
)

// Construction errors.
var (
	ErrDuplicateUser = fmt.Errorf("%w: duplicate user id", domain.ErrContractViolation)
	ErrNilUser       = fmt.Errorf("%w: nil user", domain.ErrContractViolation)
)
