package delivery

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"registration/config"
	"registration/domain"

	"github.com/asaskevich/govalidator"
	"github.com/gofiber/fiber/v2"
)

const (
	viewRegistration = "registration"
	viewStatistics   = "statistics"

	registrationSuccess = "Registration successful!"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

type viewOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageView struct {
	Page           domain.Page
	View           string
	Views          []viewOption
	Summary        *domain.Summary
	ShowDetail     bool
	Departments    []string
	Roles          []string
	Qualifications []string
	Certificates   []string
	Form           domain.RegistrationForm
	Error          string
	Success        string
}

type pageHandler struct {
	regUC domain.RegistrationUseCase
	sumUC domain.SummaryUseCase
	page  domain.Page
}

func NewPageDelivery(app *fiber.App, regUC domain.RegistrationUseCase, sumUC domain.SummaryUseCase, page domain.Page) {
	handler := &pageHandler{
		regUC: regUC,
		sumUC: sumUC,
		page:  page,
	}

	app.Get("/", handler.ShowPage)
	app.Post("/register", handler.Register)
}

func (ph *pageHandler) ShowPage(c *fiber.Ctx) error {
	view := c.Query("view", viewRegistration)
	if view != viewStatistics {
		view = viewRegistration
	}

	v, err := ph.newView(c, view, defaultForm())
	if err != nil {
		return ph.internalError(c, "ShowPage", err)
	}
	v.ShowDetail = view == viewStatistics && c.Query("detail") == "1" && v.Summary.Total > 0

	config.PrintLogInfo(c.IP(), fiber.StatusOK, "ShowPage")
	return ph.render(c, fiber.StatusOK, v)
}

func (ph *pageHandler) Register(c *fiber.Ctx) error {
	var form domain.RegistrationForm
	if err := c.BodyParser(&form); err != nil {
		config.PrintLogInfo(c.IP(), fiber.StatusBadRequest, "Register")
		return c.Status(fiber.StatusBadRequest).SendString("Invalid request body")
	}

	status := fiber.StatusOK
	var errMsg, successMsg string

	_, err := ph.regUC.Submit(c.UserContext(), &form)
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		status = fiber.StatusBadRequest
		errMsg = vErr.Message
	case err != nil:
		return ph.internalError(c, "Register", err)
	default:
		successMsg = registrationSuccess
	}

	v, err := ph.newView(c, viewRegistration, prefill(form))
	if err != nil {
		return ph.internalError(c, "Register", err)
	}
	v.Error = errMsg
	v.Success = successMsg

	config.PrintLogInfo(c.IP(), status, "Register")
	return ph.render(c, status, v)
}

func (ph *pageHandler) newView(c *fiber.Ctx, view string, form domain.RegistrationForm) (*pageView, error) {
	summary, err := ph.sumUC.Summarize(c.UserContext())
	if err != nil {
		return nil, err
	}

	v := &pageView{
		Page: ph.page,
		View: view,
		Views: []viewOption{
			{Value: viewRegistration, Label: "Registration", Selected: view == viewRegistration},
			{Value: viewStatistics, Label: "Statistics", Selected: view == viewStatistics},
		},
		Summary:        summary,
		Roles:          domain.Roles,
		Qualifications: domain.Qualifications,
		Certificates:   domain.Certificates,
		Form:           form,
	}

	if view == viewRegistration {
		departments, err := ph.regUC.Departments(c.UserContext())
		if err != nil {
			return nil, err
		}
		v.Departments = departments
	}

	return v, nil
}

func (ph *pageHandler) render(c *fiber.Ctx, status int, v *pageView) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return ph.internalError(c, "render", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

func (ph *pageHandler) internalError(c *fiber.Ctx, functionName string, err error) error {
	config.GetLogrusInstance().WithError(err).Error(functionName)
	config.PrintLogInfo(c.IP(), fiber.StatusInternalServerError, functionName)
	return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
}

// defaultForm preselects the first option of every fixed choice.
func defaultForm() domain.RegistrationForm {
	return domain.RegistrationForm{
		Role:          domain.Roles[0],
		Qualification: domain.Qualifications[0],
		Certificate:   domain.CertificateYes,
	}
}

// prefill keeps the submitted values for re-rendering. Choices outside the
// fixed option sets fall back to the defaults.
func prefill(form domain.RegistrationForm) domain.RegistrationForm {
	def := defaultForm()
	if !govalidator.IsIn(form.Role, domain.Roles...) {
		form.Role = def.Role
	}
	if !govalidator.IsIn(form.Qualification, domain.Qualifications...) {
		form.Qualification = def.Qualification
	}
	if !govalidator.IsIn(form.Certificate, domain.Certificates...) {
		form.Certificate = def.Certificate
	}
	return form
}
