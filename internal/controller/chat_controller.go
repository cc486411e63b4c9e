package controller

import (
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/pagination"
	"ai-workspace-be/internal/pkg/serverutils"
	"ai-workspace-be/internal/service"
	internalWS "ai-workspace-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler, wsMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	AskAI(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	hub         *internalWS.Hub
}

func NewChatController(chatService service.IChatService, hub *internalWS.Hub) IChatController {
	return &chatController{
		chatService: chatService,
		hub:         hub,
	}
}

// RegisterRoutes mounts the websocket endpoint ahead of /:id. wsMiddleware
// authenticates the handshake, which may carry the token as ?token=.
func (c *chatController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler, wsMiddleware fiber.Handler) {
	r.Get("/chats/ws", wsMiddleware, c.upgrade, websocket.New(c.serveWs))

	h := r.Group("/chats", jwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Post("/:id/messages", c.SendMessage)
	h.Post("/:id/ai", c.AskAI)
	h.Delete("/:id", c.Delete)
}

func (c *chatController) upgrade(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	ctx.Locals("ws_user_id", userId.String())
	return ctx.Next()
}

func (c *chatController) serveWs(conn *websocket.Conn) {
	raw, _ := conn.Locals("ws_user_id").(string)
	userId, err := parseUUID(raw)
	if err != nil {
		conn.Close()
		return
	}
	internalWS.ServeWs(c.hub, conn, userId)
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var params pagination.Params
	if err := serverutils.ParseQuery(ctx, &params); err != nil {
		return err
	}

	res, err := c.chatService.List(ctx.UserContext(), userId, params)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chats retrieved", res))
}

func (c *chatController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateChatRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chat created", res))
}

func (c *chatController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chatService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat retrieved", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *chatController) AskAI(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AskAIRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.chatService.AskAI(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("AI replied", res))
}

func (c *chatController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	id, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.chatService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chat deleted", nil))
}
