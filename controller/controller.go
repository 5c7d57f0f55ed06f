package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"medleave_backend/middleware"
	"medleave_backend/model/response"
	"medleave_backend/report"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Options are the runtime settings handlers need beyond the database.
type Options struct {
	UploadDir string
	Composer  *report.Composer
}

var (
	optsMu   sync.RWMutex
	opts     = Options{UploadDir: "uploads"}
	validate = validator.New()
)

// Configure installs the handler options.
func Configure(o Options) {
	optsMu.Lock()
	defer optsMu.Unlock()
	if o.UploadDir == "" {
		o.UploadDir = "uploads"
	}
	opts = o
}

func options() Options {
	optsMu.RLock()
	defer optsMu.RUnlock()
	return opts
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(response.ResponseModel{
		RetCode: strconv.Itoa(status),
		Message: message,
	})
}

func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(response.ResponseModel{
		RetCode: strconv.Itoa(status),
		Message: message,
		Data:    data,
	})
}

// dbError answers 404 for a missing row and 500 for anything else.
func dbError(c *fiber.Ctx, err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, fiber.StatusNotFound, notFound)
	}
	middleware.Log().Error().Err(err).Str("path", c.Path()).Msg("database error")
	return fail(c, fiber.StatusInternalServerError, "Database error")
}

// bind parses the body into dst and runs its validate tags.
func bind(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return validate.Struct(dst)
}

var errInvalidBody = errors.New("invalid request body")

// badRequest answers a bind error with 400, listing failed fields.
func badRequest(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(response.ResponseModel{
			RetCode: "400",
			Message: "Missing or invalid fields",
			Data:    fields,
		})
	}
	if errors.Is(err, errInvalidBody) {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	return fail(c, fiber.StatusBadRequest, err.Error())
}

func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
