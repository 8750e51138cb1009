package validator

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const (
	// TagAddress validates a 20 byte hex account address
	TagAddress = "address"
	// TagAmount validates a strictly positive decimal string
	TagAmount = "amount"
)

// SelfValidator is implemented by values carrying rules tags cannot express
type SelfValidator interface {
	Validate() error
}

var defaultValidate = New()

// IsValidAddress returns is an address valid or not
func IsValidAddress(address string) bool {
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		return false
	}
	checksum := common.HexToAddress(address).Hex()
	return strings.ToLower(checksum) == strings.ToLower(address)
}

// IsValidAmount returns whether s is a positive decimal number
func IsValidAmount(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// New returns a validator with the address and amount rules registered
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(TagAddress, func(fl validator.FieldLevel) bool {
		return IsValidAddress(fl.Field().String())
	})
	_ = v.RegisterValidation(TagAmount, func(fl validator.FieldLevel) bool {
		return IsValidAmount(fl.Field().String())
	})
	return v
}

// Struct validates i with the default validator, then its own Validate when implemented
func Struct(i interface{}) error {
	if err := defaultValidate.Struct(i); err != nil {
		return err
	}
	if sv, ok := i.(SelfValidator); ok {
		return sv.Validate()
	}
	return nil
}

func NewCustomValidator(v *validator.Validate) echo.Validator {
	return &CustomValidator{v}
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	if sv, ok := i.(SelfValidator); ok {
		return sv.Validate()
	}
	return nil
}
