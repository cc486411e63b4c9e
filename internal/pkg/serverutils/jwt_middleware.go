package serverutils

import (
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localUserID = "user_id"
	localEmail  = "email"
)

// TokenVerifier is the part of token.Manager the middleware needs.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// NewJwtMiddleware rejects the request with 401 before any handler runs
// unless it carries a valid bearer token.
func NewJwtMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw, err := token.FromHeader(ctx.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		return authenticate(ctx, verifier, raw)
	}
}

// NewQueryTokenMiddleware accepts the token as ?token= as well, for clients
// that cannot set headers (websocket handshakes).
func NewQueryTokenMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		raw := ctx.Query("token")
		if raw == "" {
			var err error
			raw, err = token.FromHeader(ctx.Get(fiber.HeaderAuthorization))
			if err != nil {
				return err
			}
		}
		return authenticate(ctx, verifier, raw)
	}
}

func authenticate(ctx *fiber.Ctx, verifier TokenVerifier, raw string) error {
	claims, err := verifier.Verify(raw)
	if err != nil {
		return err
	}
	userId, err := claims.Subject()
	if err != nil {
		return err
	}

	ctx.Locals(localUserID, userId)
	ctx.Locals(localEmail, claims.Email)
	return ctx.Next()
}

// UserID returns the caller set by the JWT middleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userId, ok := ctx.Locals(localUserID).(uuid.UUID)
	if !ok || userId == uuid.Nil {
		return uuid.Nil, apperror.Unauthenticated("", "Unauthorized")
	}
	return userId, nil
}

// ParamUUID parses a path parameter, answering 400 INVALID_ID when it is not
// an id.
func ParamUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(apperror.CodeInvalidID, "Invalid "+name)
	}
	return id, nil
}

// QueryUUID parses an optional query parameter.
func QueryUUID(ctx *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeInvalidID, "Invalid "+name)
	}
	return &id, nil
}
