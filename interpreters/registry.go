package interpreters

import (
	"github.com/pkg/errors"
)

// Name identifies a registered model interpreter.
type Name string

const (
	// NameATSS is the OTX ATSS detector interpreter.
	NameATSS Name = "otx_atss"
	// NameSSD is the OTX SSD detector interpreter.
	NameSSD Name = "otx_ssd"
)

// New is the factory for the built-in interpreters, routing a name to the
// matching constructor.
//
// Arguments:
//   - name: The interpreter to build.
//
// Returns:
//   - The interpreter, or an error for an unknown name.
func New(name Name) (ModelInterpreter, error) {
	switch name {
	case NameATSS:
		return NewATSS(), nil
	case NameSSD:
		return NewSSD(), nil
	default:
		return nil, errors.Errorf("unsupported interpreter name: %s", name)
	}
}
