package controller

import (
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/pagination"
	"ai-workspace-be/internal/pkg/serverutils"
	"ai-workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICardController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Bookmarks(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Like(ctx *fiber.Ctx) error
	Bookmark(ctx *fiber.Ctx) error
}

type cardController struct {
	cardService service.ICardService
}

func NewCardController(cardService service.ICardService) ICardController {
	return &cardController{
		cardService: cardService,
	}
}

func (c *cardController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/cards", jwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	// Registered before /:id so "bookmarks" is not taken for an id.
	h.Get("/bookmarks", c.Bookmarks)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Post("/:id/like", c.Like)
	h.Post("/:id/bookmark", c.Bookmark)
}

func (c *cardController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var query dto.ListCardsQuery
	if err := serverutils.ParseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.cardService.List(ctx.UserContext(), userId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Cards retrieved", res))
}

func (c *cardController) Bookmarks(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var params pagination.Params
	if err := serverutils.ParseQuery(ctx, &params); err != nil {
		return err
	}

	res, err := c.cardService.Bookmarks(ctx.UserContext(), userId, params)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Bookmarks retrieved", res))
}

func (c *cardController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateCardRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.cardService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Card created", res))
}

func (c *cardController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.cardService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Card retrieved", res))
}

func (c *cardController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCardRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.cardService.Update(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Card updated", res))
}

func (c *cardController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.cardService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Card deleted", nil))
}

func (c *cardController) Like(ctx *fiber.Ctx) error {
	return c.toggle(ctx, entity.CardReactionLike, "Like toggled")
}

func (c *cardController) Bookmark(ctx *fiber.Ctx) error {
	return c.toggle(ctx, entity.CardReactionBookmark, "Bookmark toggled")
}

func (c *cardController) toggle(ctx *fiber.Ctx, kind entity.CardReaction, message string) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.cardService.Toggle(ctx.UserContext(), userId, id, kind)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
