package delivery

import (
	"registration/config"

	"github.com/gofiber/fiber/v2"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

type qrHandler struct {
	publicURL string
}

// NewQRDelivery serves a QR code pointing at the sign-up page. An empty
// publicURL encodes the requesting host's base URL.
func NewQRDelivery(app *fiber.App, publicURL string) {
	handler := &qrHandler{
		publicURL: publicURL,
	}

	app.Get("/qr.png", handler.SignUpQRCode)
}

func (qh *qrHandler) SignUpQRCode(c *fiber.Ctx) error {
	target := qh.publicURL
	if target == "" {
		target = c.BaseURL() + "/"
	}

	png, err := qrcode.Encode(target, qrcode.Medium, qrSize)
	if err != nil {
		config.GetLogrusInstance().WithError(err).Error("SignUpQRCode")
		config.PrintLogInfo(c.IP(), fiber.StatusInternalServerError, "SignUpQRCode")
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to generate QR code")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(fiber.StatusOK).Send(png)
}
