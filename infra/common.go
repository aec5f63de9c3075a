package infra

import (
	"github.com/pkg/errors"
)

func PanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

func WrapErr(err error, msg string) error {
	if err == nil {
		return err
	}
	return errors.Wrap(err, msg)
}
