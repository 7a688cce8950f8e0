package logging

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/svcsuite/secutils/errors"
)

var validate *validator.Validate
var once sync.Once

func validateOptions(opts Options) error {
	const op errors.Op = "logging.validateOptions"

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(opts); err != nil {
		return errors.NewConfigurationError(op, "options", errMsgConfigInvalid).WithCause(err)
	}
	return nil
}
