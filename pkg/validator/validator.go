package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
)

// AllowedImageExtensions are the upload formats accepted by the catalog,
// matched case-insensitively against the substring after the last dot.
var AllowedImageExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif"}

func Init() {
	validate = validator.New()

	sanitizer = bluemonday.StrictPolicy()

	registerCustomValidations(validate)

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	return validate.Struct(s)
}

func SanitizeString(s string) string {
	if sanitizer == nil {
		return s
	}
	return sanitizer.Sanitize(s)
}

func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func validateSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	matched, _ := regexp.MatchString(`^[a-z0-9-]+$`, slug)
	return matched
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

// ValidateImageExtension reports whether a declared filename carries one of
// the allowed image extensions. A filename with no dot is rejected.
func ValidateImageExtension(filename string) bool {
	if !strings.Contains(filename, ".") {
		return false
	}

	filename = strings.ToLower(filename)
	for _, ext := range AllowedImageExtensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}

func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}

// DigitsOnly strips everything except ASCII digits; used to normalize a
// WhatsApp number into a wa.me link target.
func DigitsOnly(s string) string {
	nonDigits := regexp.MustCompile(`[^0-9]`)
	return nonDigits.ReplaceAllString(s, "")
}
