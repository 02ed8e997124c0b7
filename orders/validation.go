package orders

import (
	"sort"
	"strconv"
	"strings"

	"broilers/models"
	"broilers/utils"
)

// Form field names, matching the JSON body and the public form inputs.
const (
	FieldCustomerName = "customerName"
	FieldHensCount    = "hensCount"
	FieldWhatsApp     = "whatsapp"
)

const subscriberDigits = 10

// FieldErrors maps a form field to its message. An empty map means the
// form is valid. It satisfies error so the service can return it directly.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

// ValidateOrder checks every field of the public order form and reports
// all problems at once. It has no side effects.
func ValidateOrder(form models.OrderForm, countryCode string) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(form.CustomerName) == "" {
		errs[FieldCustomerName] = "Customer name required"
	}

	hens := strings.TrimSpace(form.HensCount)
	if hens == "" {
		errs[FieldHensCount] = "Number of hens required"
	} else if n, err := strconv.Atoi(hens); err != nil || n <= 0 {
		errs[FieldHensCount] = "Number of hens must be a positive whole number"
	}

	if _, ok := LocalNumber(form.WhatsApp, countryCode); !ok {
		errs[FieldWhatsApp] = "Enter valid 10-digit WhatsApp number"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// LocalNumber strips non-digits and an optional leading country code and
// returns the 10 digit subscriber number.
func LocalNumber(raw, countryCode string) (string, bool) {
	digits := utils.OnlyDigits(raw)
	if countryCode != "" && len(digits) == len(countryCode)+subscriberDigits && strings.HasPrefix(digits, countryCode) {
		digits = digits[len(countryCode):]
	}
	if len(digits) != subscriberDigits {
		return "", false
	}
	return digits, true
}
