package controller

import (
	"bufio"
	"errors"
	"fmt"

	"medleave_backend/middleware"
	"medleave_backend/model"
	"medleave_backend/report"

	"github.com/gofiber/fiber/v2"
)

// GenerateReport renders the certificate of one leave record as a PDF
// attachment. The kind is checked before the database is touched.
func GenerateReport(c *fiber.Ctx) error {
	kind, err := report.ParseKind(c.Params("type"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Report type not supported yet")
	}
	id, valid := paramID(c)
	if !valid {
		return fail(c, fiber.StatusNotFound, "Patient not found")
	}

	var p model.Patient
	err = middleware.DBConn.Scopes(OwnedBy(middleware.CurrentUser(c))).
		Preload("Hospital").Preload("Doctor").Preload("Nationality").
		First(&p, id).Error
	if err != nil {
		return dbError(c, err, "Patient not found")
	}

	composer := options().Composer
	if composer == nil {
		middleware.Log().Error().Msg("report composer is not configured")
		return fail(c, fiber.StatusInternalServerError, "Failed to generate report")
	}
	doc, err := composer.Render(c.UserContext(), kind, ToRecord(p))
	switch {
	case errors.Is(err, report.ErrIncompleteRecord):
		return fail(c, fiber.StatusBadRequest, "Patient record is missing its identity number or name")
	case err != nil:
		middleware.Log().Error().Err(err).Uint("patient", p.ID).Str("kind", string(kind)).Msg("generate report")
		return fail(c, fiber.StatusInternalServerError, "Failed to generate report")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
	log := middleware.Log().With().Uint("patient", p.ID).Str("file", doc.Filename).Logger()
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		if _, err := doc.WriteTo(w); err != nil {
			log.Error().Err(err).Msg("write report")
			return
		}
		if err := w.Flush(); err != nil {
			log.Warn().Err(err).Msg("flush report")
		}
	})
	return nil
}
