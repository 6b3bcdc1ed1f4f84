package renewal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PhoneValidator decides whether a phone number can receive outreach
type PhoneValidator interface {
	IsValid(phone string) bool
}

// Supported phone regions
const (
	PhoneRegionTH   = "TH"
	PhoneRegionE164 = "E164"
)

// PhoneTagTH is the validator tag for Thai mobile and landline numbers
const PhoneTagTH = "th_phone"

var (
	// 0 followed by 8 or 9 digits once the +66 prefix is folded
	thPhonePattern = regexp.MustCompile(`^0[2-9][0-9]{7,8}$`)
	phoneStripper  = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// CleanPhone strips common separators from a phone number
func CleanPhone(phone string) string {
	return phoneStripper.Replace(strings.TrimSpace(phone))
}

// IsThaiPhone reports whether phone is a syntactically valid Thai number
func IsThaiPhone(phone string) bool {
	p := CleanPhone(phone)
	if strings.HasPrefix(p, "+66") {
		p = "0" + strings.TrimPrefix(p, "+66")
	} else if strings.HasPrefix(p, "66") && len(p) >= 10 {
		p = "0" + strings.TrimPrefix(p, "66")
	}
	return thPhonePattern.MatchString(p)
}

// RegisterPhoneValidations registers the phone tags on v
func RegisterPhoneValidations(v *validator.Validate) error {
	return v.RegisterValidation(PhoneTagTH, func(fl validator.FieldLevel) bool {
		return IsThaiPhone(fl.Field().String())
	})
}

type tagPhoneValidator struct {
	validate *validator.Validate
	tag      string
	clean    bool
}

// NewPhoneValidator returns a validator for the given region (TH or E164)
func NewPhoneValidator(region string) (PhoneValidator, error) {
	v := validator.New()
	if err := RegisterPhoneValidations(v); err != nil {
		return nil, fmt.Errorf("failed to register phone validation: %w", err)
	}

	switch strings.ToUpper(strings.TrimSpace(region)) {
	case "", PhoneRegionTH:
		return &tagPhoneValidator{validate: v, tag: "required," + PhoneTagTH}, nil
	case PhoneRegionE164:
		return &tagPhoneValidator{validate: v, tag: "required,e164", clean: true}, nil
	default:
		return nil, fmt.Errorf("unsupported phone region: %s", region)
	}
}

// IsValid implements PhoneValidator
func (v *tagPhoneValidator) IsValid(phone string) bool {
	if v.clean {
		phone = CleanPhone(phone)
	}
	return v.validate.Var(phone, v.tag) == nil
}
