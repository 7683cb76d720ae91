package delivery

import (
	"errors"
	"registration/config"
	"registration/domain"

	"github.com/gofiber/fiber/v2"
)

type apiHandler struct {
	regUC domain.RegistrationUseCase
	sumUC domain.SummaryUseCase
}

func NewAPIDelivery(app *fiber.App, regUC domain.RegistrationUseCase, sumUC domain.SummaryUseCase) {
	handler := &apiHandler{
		regUC: regUC,
		sumUC: sumUC,
	}

	route := app.Group("/api")
	route.Get("/registrations", handler.GetAllRegistrations)
	route.Post("/registrations", handler.CreateRegistration)
	route.Get("/summary", handler.GetSummary)
}

func (ah *apiHandler) GetAllRegistrations(c *fiber.Ctx) error {
	records, err := ah.regUC.List(c.UserContext())
	if err != nil {
		config.PrintLogInfo(c.IP(), fiber.StatusInternalServerError, "GetAllRegistrations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to retrieve registrations",
		})
	}

	config.PrintLogInfo(c.IP(), fiber.StatusOK, "GetAllRegistrations")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Registrations retrieved successfully",
		"data":    records,
	})
}

func (ah *apiHandler) CreateRegistration(c *fiber.Ctx) error {
	var req domain.RegistrationForm
	if err := c.BodyParser(&req); err != nil {
		config.PrintLogInfo(c.IP(), fiber.StatusBadRequest, "CreateRegistration")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Invalid request body",
		})
	}

	record, err := ah.regUC.Submit(c.UserContext(), &req)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			config.PrintLogInfo(c.IP(), fiber.StatusBadRequest, "CreateRegistration")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"field":   vErr.Field,
				"message": vErr.Message,
			})
		}

		config.PrintLogInfo(c.IP(), fiber.StatusInternalServerError, "CreateRegistration")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to save registration",
		})
	}

	config.PrintLogInfo(c.IP(), fiber.StatusCreated, "CreateRegistration")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": registrationSuccess,
		"data":    record,
	})
}

func (ah *apiHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := ah.sumUC.Summarize(c.UserContext())
	if err != nil {
		config.PrintLogInfo(c.IP(), fiber.StatusInternalServerError, "GetSummary")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"message": "Failed to summarize registrations",
		})
	}

	config.PrintLogInfo(c.IP(), fiber.StatusOK, "GetSummary")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Summary retrieved successfully",
		"data":    summary,
	})
}
