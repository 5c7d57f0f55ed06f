package routes

import (
	"errors"
	"strconv"

	"medleave_backend/controller"
	"medleave_backend/middleware"
	"medleave_backend/model/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Options are the paths and origins the router needs.
type Options struct {
	UploadDir   string
	AssetDir    string
	CORSOrigins string
}

// NewApp builds the fiber app with its error handler and routes.
func NewApp(o Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "medleave",
		BodyLimit:    10 << 20,
		ErrorHandler: ErrorHandler,
	})
	AppRoutes(app, o)
	return app
}

// ErrorHandler answers fiber errors with their own code and everything
// else with a logged 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		middleware.Log().Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}
	return c.Status(code).JSON(response.ResponseModel{
		RetCode: strconv.Itoa(code),
		Message: message,
	})
}

func AppRoutes(app *fiber.App, o Options) {
	if o.UploadDir == "" {
		o.UploadDir = "uploads"
	}
	if o.CORSOrigins == "" {
		o.CORSOrigins = "*"
	}

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     o.CORSOrigins,
		AllowCredentials: o.CORSOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Disposition",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Static("/uploads", o.UploadDir)
	if o.AssetDir != "" {
		app.Static("/assets", o.AssetDir)
	}

	// PUBLIC INQUIRY
	inquiry := app.Group("/inquiries/slenquiry")
	inquiry.Get("/", controller.InquiryPage)
	inquiry.Post("/", controller.InquirySubmit)
	inquiry.Post("/api", controller.InquiryAPI)

	// LOGIN
	app.Post("/api/login", controller.Login)

	api := app.Group("/api", middleware.JWTMiddleware())
	api.Post("/logout", controller.Logout)
	api.Put("/profile", controller.UpdateProfile)

	// USERS (admin)
	users := api.Group("/users", middleware.RequireAdmin())
	users.Get("/", controller.GetUsers)
	users.Post("/", controller.CreateUser)
	users.Put("/:id", controller.UpdateUser)
	users.Delete("/:id", controller.DeleteUser)

	data := app.Group("/manger_data", middleware.JWTMiddleware())

	// PATIENTS
	data.Get("/patientsall", controller.GetAllPatients)
	data.Get("/user20", controller.GetLatestPatients)
	data.Get("/patients/:id", controller.GetPatient)
	data.Post("/patients", controller.CreatePatient)
	data.Put("/patients/:id", controller.UpdatePatient)
	data.Delete("/patients/:id", controller.DeletePatient)

	// DOCTORS
	data.Get("/doctors", controller.GetDoctors)
	data.Get("/doctors/:id", controller.GetDoctor)
	data.Post("/doctors", controller.CreateDoctor)
	data.Put("/doctors/:id", controller.UpdateDoctor)
	data.Delete("/doctors/:id", controller.DeleteDoctor)

	// HOSPITALS
	data.Get("/hospitals", controller.GetHospitals)
	data.Get("/hospitals/:id", controller.GetHospital)
	data.Post("/hospitals", controller.CreateHospital)
	data.Put("/hospitals/:id", controller.UpdateHospital)
	data.Delete("/hospitals/:id", controller.DeleteHospital)

	// NATIONALITIES
	data.Get("/nationalities", controller.GetNationalities)
	data.Post("/nationalities", controller.CreateNationality)
	data.Delete("/nationalities/:id", controller.DeleteNationality)

	// SETTINGS (admin)
	settings := data.Group("/settings", middleware.RequireAdmin())
	settings.Get("/", controller.GetSettings)
	settings.Post("/", controller.SaveSetting)
	settings.Delete("/:id", controller.DeleteSetting)

	// REPORTS
	data.Get("/reports/:type/generate/:id", controller.GenerateReport)
}
