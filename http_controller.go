package mfa

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// RegisterStatusRoutes mounts the status controller on a router.
func RegisterStatusRoutes[T any](app router.Router[T], opts ...StatusControllerOption) {

	controller := NewStatusController(opts...)

	app.
		Get(controller.Routes.Health, controller.Health).
		SetName("mfa-health.get")

	app.
		Post(controller.Routes.PreAuth, controller.PreAuth).
		SetName("mfa-preauth.post")
}

type StatusControllerRoutes struct {
	Health  string
	PreAuth string
}

type StatusController struct {
	Debug        bool
	Logger       Logger
	Resolver     AccountResolver
	Routes       *StatusControllerRoutes
	ErrorHandler router.ErrorHandler
}

type StatusControllerOption func(*StatusController) *StatusController

func NewStatusController(opts ...StatusControllerOption) *StatusController {
	c := &StatusController{
		Logger: defLogger{},
		Routes: &StatusControllerRoutes{
			Health:  "/mfa/health",
			PreAuth: "/mfa/preauth",
		},
	}
	c.ErrorHandler = c.defaultErrHandler

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Resolver == nil {
		panic("Missing AccountResolver in status controller...")
	}

	return c
}

// WithControllerResolver sets the resolver backing the controller.
func WithControllerResolver(resolver AccountResolver) StatusControllerOption {
	return func(c *StatusController) *StatusController {
		c.Resolver = resolver
		return c
	}
}

// WithControllerLogger sets the controller logger.
func WithControllerLogger(logger Logger) StatusControllerOption {
	return func(c *StatusController) *StatusController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithControllerDebug toggles verbose payload printing.
func WithControllerDebug(debug bool) StatusControllerOption {
	return func(c *StatusController) *StatusController {
		c.Debug = debug
		return c
	}
}

// Health reports provider liveness.
func (a *StatusController) Health(ctx router.Context) error {
	available := a.Resolver.Ping(ctx.Context())

	code := fiber.StatusOK
	if !available {
		code = fiber.StatusServiceUnavailable
	}

	return ctx.JSON(code, map[string]any{
		"available": available,
	})
}

// PreAuthRequest payload
type PreAuthRequest struct {
	Username string `form:"username" json:"username"`
}

// Validate will run validation rules
func (r PreAuthRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
			validation.Length(1, 255),
			is.PrintableASCII,
		),
	)
}

// PreAuth resolves the MFA eligibility for the payload username.
func (a *StatusController) PreAuth(ctx router.Context) error {
	payload := new(PreAuthRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("preauth parse payload: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("preauth validate payload: ", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
	}

	if a.Debug {
		fmt.Println("======= MFA PREAUTH ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("==========================")
	}

	account := a.Resolver.Resolve(ctx.Context(), payload.Username)

	return ctx.JSON(statusCodeFor(account.Status), map[string]any{
		"username":          account.Username,
		"status":            account.Status,
		"message":           account.Message,
		"enroll_portal_url": account.EnrollPortalURL,
		"devices":           account.Devices,
	})
}

func (a *StatusController) defaultErrHandler(ctx router.Context, err error) error {
	a.Logger.Error("status controller error: ", "error", err)
	return ctx.JSON(fiber.StatusInternalServerError, map[string]string{
		"error": err.Error(),
	})
}

// statusCodeFor maps an eligibility decision to an HTTP status. The account
// payload always carries the authoritative value; codes are a convenience
// for dumb clients.
func statusCodeFor(status AccountStatus) int {
	switch status {
	case StatusDeny:
		return fiber.StatusForbidden
	case StatusUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusOK
	}
}
