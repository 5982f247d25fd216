package providers

import (
	"errors"
	"survey/internal/structures"

	"github.com/gookit/validate"
)

var ErrMissingClientID = errors.New("identity.clientId is required unless identity.devMode is enabled")

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}
	if !cv.conf.Identity.DevMode && cv.conf.Identity.ClientID == "" {
		return ErrMissingClientID
	}
	return nil
}
