package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/andrianarivo/haustiere/internal/api/metrics"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

type PaymentHandler struct {
	paymentService ports.PaymentService
}

func NewPaymentHandler(paymentService ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type checkoutSessionResponse struct {
	URL string `json:"url"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateCheckoutSession starts a hosted checkout for a cat's adoption fee.
//
// @Summary      Create checkout session
// @Tags         payments
// @Produce      json
// @Param        catId  path      int  true  "Cat ID"
// @Success      200    {object}  checkoutSessionResponse
// @Failure      404    {object}  map[string]string
// @Router       /payments/create-session/{catId} [post]
func (h *PaymentHandler) CreateCheckoutSession(c echo.Context) error {
	catID, err := paymentCatID(c)
	if err != nil {
		return err
	}

	session, err := h.paymentService.CreateCheckoutSession(c.Request().Context(), catID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkoutSessionResponse{URL: session.URL})
}

// CreatePaymentIntent starts an in-app payment for the mobile client.
//
// @Summary      Create payment intent
// @Tags         payments
// @Produce      json
// @Param        catId  path      int  true  "Cat ID"
// @Success      200    {object}  paymentIntentResponse
// @Failure      404    {object}  map[string]string
// @Router       /payments/create-intent/{catId} [post]
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	catID, err := paymentCatID(c)
	if err != nil {
		return err
	}

	secret, err := h.paymentService.CreatePaymentIntent(c.Request().Context(), catID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}

// Webhook receives Stripe event deliveries. The body must stay raw for
// signature verification, so this handler never binds JSON.
//
// @Summary      Stripe webhook
// @Tags         payments
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /payments/webhook [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil || len(payload) == 0 {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "missing request body")
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "webhook verification failed")
	}

	metrics.WebhookEventsTotal.WithLabelValues("processed").Inc()
	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}

// Success renders the post-checkout landing page.
func (h *PaymentHandler) Success(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session_id")
	}

	details, err := h.paymentService.RetrieveSession(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}

	page := fmt.Sprintf(successPage, details.CatID, details.ID)
	return c.HTML(http.StatusOK, page)
}

// Cancel renders the cancelled-checkout landing page.
func (h *PaymentHandler) Cancel(c echo.Context) error {
	return c.HTML(http.StatusOK, cancelPage)
}

func paymentCatID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("catId"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid cat id")
	}
	return uint(id), nil
}

const successPage = `<!DOCTYPE html>
<html>
  <head><title>Payment Successful</title></head>
  <body>
    <h1>Payment Successful!</h1>
    <p>Thank you for your purchase. Your cat (ID: %d) adoption payment has been processed successfully.</p>
    <p>Session ID: %s</p>
    <p>We'll be in touch shortly with next steps for your cat adoption process.</p>
  </body>
</html>`

const cancelPage = `<!DOCTYPE html>
<html>
  <head><title>Payment Cancelled</title></head>
  <body>
    <h1>Payment Cancelled</h1>
    <p>Your payment was cancelled. No charges were made.</p>
    <p>If you'd like to try again or have any questions, please contact us.</p>
  </body>
</html>`
