package delivery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"registration/config"
	"registration/domain"
	"registration/services/registration/repository"
	"registration/services/registration/usecase"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type staticRoster []string

func (s staticRoster) Load(ctx context.Context) ([]string, error) { return s, nil }

func testPage() domain.Page {
	return domain.Page{
		Title:      "Training registration",
		Heading:    "TRAINING REGISTRATION",
		Subheading: "Flexible bronchoscopy in diagnosis and treatment",
		LogoURL:    "https://example.com/logo.png",
		FaviconURL: "https://example.com/icon.png",
	}
}

// setupApp wires every delivery against an in-memory store.
func setupApp(t *testing.T, roster []string, seed ...domain.Registration) (*fiber.App, domain.RegistrationRepo) {
	t.Helper()
	repo := repository.NewMemoryRegistrationRepository(seed...)
	clock := func() time.Time { return time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local) }
	regUC := usecase.NewRegistrationUseCase(repo, staticRoster(roster), time.Second, clock)
	sumUC := usecase.NewSummaryUseCase(repo, time.Second)

	app := fiber.New(config.GetFiberConfig())
	NewPageDelivery(app, regUC, sumUC, testPage())
	NewAPIDelivery(app, regUC, sumUC)
	NewQRDelivery(app, "")
	return app, repo
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func postForm(t *testing.T, app *fiber.App, values url.Values) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return doRequest(t, app, req)
}

func storedCount(t *testing.T, repo domain.RegistrationRepo) int {
	t.Helper()
	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	return len(records)
}

func TestShowPage_RegistrationView(t *testing.T) {
	app, _ := setupApp(t, nil)

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, "<title>Training registration</title>")
	require.Contains(t, body, "https://example.com/logo.png")
	require.Contains(t, body, "TRAINING REGISTRATION")
	require.Contains(t, body, "Registration form")
	require.Contains(t, body, "CME credit is currently issued to doctors only")
	require.Contains(t, body, `<input type="text" id="department" name="department"`)
	require.Contains(t, body, `value="Yes" checked`)
	require.Contains(t, body, "Registered: 0")
}

func TestShowPage_RosterRendersSelect(t *testing.T) {
	app, _ := setupApp(t, []string{"Internal Medicine", "Surgery"})

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/?view=registration", nil))
	require.Contains(t, body, `<select id="department" name="department">`)
	require.Contains(t, body, `<option value="Surgery">Surgery</option>`)
}

func TestShowPage_UnknownViewFallsBack(t *testing.T) {
	app, _ := setupApp(t, nil)

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/?view=admin", nil))
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, "Registration form")
}

func TestShowPage_StatisticsView(t *testing.T) {
	seed := []domain.Registration{
		{ID: 1, FullName: "A", Department: "Surgery"},
		{ID: 2, FullName: "B", Department: "ICU"},
		{ID: 3, FullName: "C", Department: "Surgery"},
	}
	app, _ := setupApp(t, nil, seed...)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/?view=statistics", nil))
	require.Contains(t, body, "Registration statistics")
	require.Contains(t, body, "Total registrations: 3")
	require.Contains(t, body, "<td>Surgery</td><td>2</td>")
	require.Contains(t, body, "Show detailed statistics")
	require.NotContains(t, body, "Detailed registration statistics")
	require.NotContains(t, body, "Registration form")
	require.Contains(t, body, "Registered: 3")

	_, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/?view=statistics&detail=1", nil))
	require.Contains(t, body, "Detailed registration statistics")
	require.Equal(t, 2, strings.Count(body, "<td>ICU</td><td>1</td>"))
}

func TestShowPage_StatisticsEmpty(t *testing.T) {
	app, _ := setupApp(t, nil)

	_, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/?view=statistics&detail=1", nil))
	require.Contains(t, body, "Total registrations: 0")
	require.NotContains(t, body, "<table>")
	require.NotContains(t, body, "Show detailed statistics")
}

func TestRegister_Success(t *testing.T) {
	app, repo := setupApp(t, nil, domain.Registration{ID: 1, FullName: "Existing", Department: "ICU"})

	status, body := postForm(t, app, url.Values{
		"full_name":  {"Nguyen Van A"},
		"role":       {"Doctor"},
		"department": {"Internal Medicine"},
		"phone":      {"0901234567"},
	})
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, "Registration successful!")
	require.Contains(t, body, `value="Nguyen Van A"`, "form keeps submitted values")
	require.Contains(t, body, "Registered: 2")

	records, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 2, records[1].ID)
	require.Equal(t, "Internal Medicine", records[1].Department)
	require.Equal(t, "2024-05-01 08:30:00", records[1].SubmittedAt)
}

func TestRegister_MissingName(t *testing.T) {
	app, repo := setupApp(t, nil)

	status, body := postForm(t, app, url.Values{
		"full_name": {""},
		"phone":     {"0901234567"},
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body, "Full name is required.")
	require.NotContains(t, body, "Registration successful!")
	require.Zero(t, storedCount(t, repo))
}

func TestRegister_MissingPhone(t *testing.T) {
	app, repo := setupApp(t, nil)

	status, body := postForm(t, app, url.Values{
		"full_name":  {"Nguyen Van A"},
		"role":       {"Doctor"},
		"department": {"ICU"},
		"phone":      {"   "},
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body, "Phone number is required.")
	require.NotContains(t, body, "Full name is required.")
	require.Zero(t, storedCount(t, repo))
}

type apiEnvelope struct {
	Success bool   `json:"success"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func TestAPI_CreateAndList(t *testing.T) {
	app, repo := setupApp(t, nil)

	payload := `{"full_name":"Nguyen Van A","role":"Doctor","department":"Internal Medicine","phone":"0901234567","birth_date":"1980-02-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, body := doRequest(t, app, req)
	require.Equal(t, fiber.StatusCreated, status)

	var created struct {
		Success bool                `json:"success"`
		Data    domain.Registration `json:"data"`
	}
	require.NoError(t, sonic.UnmarshalString(body, &created))
	require.True(t, created.Success)
	require.Equal(t, 1, created.Data.ID)
	require.Equal(t, "01/02/1980", created.Data.BirthDate)
	require.Equal(t, 1, storedCount(t, repo))

	status, body = doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/registrations", nil))
	require.Equal(t, fiber.StatusOK, status)

	var listed struct {
		Data []domain.Registration `json:"data"`
	}
	require.NoError(t, sonic.UnmarshalString(body, &listed))
	require.Len(t, listed.Data, 1)
}

func TestAPI_CreateValidationError(t *testing.T) {
	app, repo := setupApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(`{"full_name":"Nguyen Van A","role":""}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, body := doRequest(t, app, req)
	require.Equal(t, fiber.StatusBadRequest, status)

	var env apiEnvelope
	require.NoError(t, sonic.UnmarshalString(body, &env))
	require.False(t, env.Success)
	require.Equal(t, "role", env.Field)
	require.Equal(t, "Role is required.", env.Message)
	require.Zero(t, storedCount(t, repo))
}

func TestAPI_CreateInvalidBody(t *testing.T) {
	app, _ := setupApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/registrations", strings.NewReader(`{not json`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, _ := doRequest(t, app, req)
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestAPI_Summary(t *testing.T) {
	app, _ := setupApp(t, nil,
		domain.Registration{ID: 1, Department: "ICU"},
		domain.Registration{ID: 2, Department: "Surgery"},
		domain.Registration{ID: 3, Department: "ICU"},
	)

	status, body := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/summary", nil))
	require.Equal(t, fiber.StatusOK, status)

	var resp struct {
		Data domain.Summary `json:"data"`
	}
	require.NoError(t, sonic.UnmarshalString(body, &resp))
	require.Equal(t, 3, resp.Data.Total)
	require.Equal(t, []domain.DepartmentCount{
		{Department: "ICU", Count: 2},
		{Department: "Surgery", Count: 1},
	}, resp.Data.Departments)
}

func TestQRCode(t *testing.T) {
	app, _ := setupApp(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/qr.png", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(body), "\x89PNG"))
}

func TestPrefill(t *testing.T) {
	form := prefill(domain.RegistrationForm{FullName: "A", Role: "Nurse", Qualification: "PhD", Certificate: "Maybe"})

	require.Equal(t, "A", form.FullName)
	require.Equal(t, domain.RoleDoctor, form.Role)
	require.Equal(t, "PhD", form.Qualification)
	require.Equal(t, domain.CertificateYes, form.Certificate)
}
