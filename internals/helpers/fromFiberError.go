package helper

import (
	"errors"
	"log"

	"assessku_backend/internals/helpers/apperr"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error hasil Transaction (biasanya *fiber.Error)
// menjadi response JSON konsisten via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan asli.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}

// StatusOfKind memetakan apperr.Kind ke HTTP status.
func StatusOfKind(k apperr.Kind) int {
	switch k {
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindInvalidInput:
		return fiber.StatusUnprocessableEntity
	case apperr.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// FromServiceError: error dari service layer → response JSON.
// *apperr.Error → 403/404/422/409; *fiber.Error tetap; sisanya 500 (pesan asli di-log, bukan dikirim).
func FromServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if k, ok := apperr.KindOf(err); ok {
		return JsonError(c, StatusOfKind(k), apperr.MessageOf(err))
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
