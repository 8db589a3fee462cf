package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ Khusus error validasi (validator.v10) → 422 dengan map field → pesan
func ValidationError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	return JsonValidationError(c, ValidationMessages(ve))
}

// ValidationMessages mengubah validator.ValidationErrors menjadi pesan per field (json name).
func ValidationMessages(ve validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := fe.Field()
		out[field] = append(out[field], validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " wajib diisi"
	case "email":
		return "format email tidak valid"
	case "min":
		return fe.Field() + " minimal " + fe.Param()
	case "max":
		return fe.Field() + " maksimal " + fe.Param()
	case "oneof":
		return fe.Field() + " harus salah satu dari: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gtefield":
		return fe.Field() + " tidak boleh sebelum " + fe.Param()
	default:
		return "format tidak valid (" + fe.Tag() + ")"
	}
}
