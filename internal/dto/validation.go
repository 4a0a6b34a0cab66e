package dto

import (
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the custom binding tags used by the request DTOs:
//
//	bookdate  a date typed in the configured display order
//	mnemo     a ledger mnemonic: letters and digits, no blank
func RegisterValidations(dates *utils.DateFormatter) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("bookdate", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		if s == "" {
			return true // presence is checked by required
		}
		_, err := dates.Parse(s)
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("mnemo", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && strings.IndexFunc(s, func(r rune) bool {
			return !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
		}) < 0
	})
}
