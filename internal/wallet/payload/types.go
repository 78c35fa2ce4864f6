package payload

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrEmptyTitle              = errors.New("survey title must not be empty")
	ErrEmptyDescription        = errors.New("survey description must not be empty")
	ErrNonPositiveReward       = errors.New("reward amount must be positive")
	ErrNonPositiveMaxResponses = errors.New("max responses must be positive")
	ErrNonPositiveAmount       = errors.New("amount must be positive")
	ErrEmptyRecipient          = errors.New("recipient address must not be empty")
	ErrInvalidFunction         = errors.New("function must be of the form <address>::<module>::<entrypoint>")
)

// Address marks an argument that is encoded as an account address rather than a byte vector.
type Address string

// Payload is an entry function call. Arguments hold []byte (vector<u8>), uint64 (u64),
// bool or Address values.
type Payload struct {
	Function  string
	Arguments []any
}

// Function is a parsed fully qualified entry function identifier.
type Function struct {
	ModuleAddress string
	Module        string
	Name          string
}

// ParseFunction splits "<address>::<module>::<entrypoint>".
func ParseFunction(function string) (*Function, error) {
	parts := strings.Split(function, "::")
	if len(parts) != 3 {
		return nil, errors.Wrapf(ErrInvalidFunction, "got %q", function)
	}

	for _, part := range parts {
		if part == "" {
			return nil, errors.Wrapf(ErrInvalidFunction, "got %q", function)
		}
	}

	return &Function{
		ModuleAddress: parts[0],
		Module:        parts[1],
		Name:          parts[2],
	}, nil
}

func (f *Function) String() string {
	return f.ModuleAddress + "::" + f.Module + "::" + f.Name
}
