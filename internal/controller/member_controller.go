package controller

import (
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/pkg/apperror"
	"ai-workspace-be/internal/pkg/serverutils"
	"ai-workspace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMemberController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	UpdateRole(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
}

type memberController struct {
	memberService service.IMemberService
}

func NewMemberController(memberService service.IMemberService) IMemberController {
	return &memberController{
		memberService: memberService,
	}
}

func (c *memberController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/members", jwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Add)
	h.Put("/:workspaceId/:userId", c.UpdateRole)
	h.Delete("/:workspaceId/:userId", c.Remove)
}

func (c *memberController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var query dto.ListMembersQuery
	if err := serverutils.ParseQuery(ctx, &query); err != nil {
		return err
	}
	workspaceId, err := uuid.Parse(query.WorkspaceId)
	if err != nil {
		return apperror.Validation(apperror.CodeInvalidID, "Invalid workspaceId")
	}

	res, err := c.memberService.List(ctx.UserContext(), userId, workspaceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Members retrieved", res))
}

func (c *memberController) Add(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.AddMemberRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.memberService.Add(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Member added", res))
}

func (c *memberController) UpdateRole(ctx *fiber.Ctx) error {
	userId, workspaceId, targetId, err := memberPath(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateMemberRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.memberService.UpdateRole(ctx.UserContext(), userId, workspaceId, targetId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Member updated", res))
}

func (c *memberController) Remove(ctx *fiber.Ctx) error {
	userId, workspaceId, targetId, err := memberPath(ctx)
	if err != nil {
		return err
	}

	if err := c.memberService.Remove(ctx.UserContext(), userId, workspaceId, targetId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Member removed", nil))
}

func memberPath(ctx *fiber.Ctx) (userId, workspaceId, targetId uuid.UUID, err error) {
	if userId, err = serverutils.UserID(ctx); err != nil {
		return
	}
	if workspaceId, err = serverutils.ParamUUID(ctx, "workspaceId"); err != nil {
		return
	}
	targetId, err = serverutils.ParamUUID(ctx, "userId")
	return
}
