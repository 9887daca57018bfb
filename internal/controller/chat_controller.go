package controller

import (
	"bufio"
	"encoding/json"
	"fmt"

	"ancestral-travel-be/internal/constant"
	"ancestral-travel-be/internal/dto"
	"ancestral-travel-be/internal/pkg/serverutils"
	"ancestral-travel-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	GetUsage(ctx *fiber.Ctx) error
}

type chatController struct {
	agentService   service.IAgentService
	contextService service.IContextService
}

func NewChatController(agentService service.IAgentService, contextService service.IContextService) IChatController {
	return &chatController{
		agentService:   agentService,
		contextService: contextService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Send)
	h.Get("usage", c.GetUsage)
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if req.UseStreaming {
		return c.sendStreaming(ctx, userId, &req)
	}

	res, err := c.agentService.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

// sendStreaming replays the model output as server-sent events. Each delta is
// a `data:` frame carrying a JSON chunk; the final frame carries the full
// turn result, then the stream closes with [DONE].
func (c *chatController) sendStreaming(ctx *fiber.Ctx, userId uuid.UUID, req *dto.SendChatRequest) error {
	// Validation and quota rejections must surface as regular JSON errors.
	// Once the stream is committed the 200 status is already on the wire.
	if req.Message == "" {
		return &service.ValidationError{Msg: constant.MsgMessageRequired}
	}
	if len([]rune(req.Message)) > constant.MaxMessageLength {
		return &service.ValidationError{Msg: constant.MsgMessageTooLong}
	}

	quota, err := c.contextService.CanSendMessage(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if !quota.Allowed {
		return &dto.LimitExceededError{Reason: quota.Reason, Usage: quota.Usage}
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	// The fiber.Ctx is recycled once this handler returns, but the underlying
	// fasthttp context stays alive for the duration of the stream and
	// implements context.Context.
	reqCtx := ctx.Context()

	reqCtx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		onDelta := func(delta string) error {
			frame, err := json.Marshal(dto.StreamChunk{Delta: delta})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", frame); err != nil {
				return err
			}
			return w.Flush()
		}

		res, err := c.agentService.SendMessageStream(reqCtx, userId, req, onDelta)
		if err != nil {
			frame, _ := json.Marshal(dto.StreamChunk{Error: err.Error()})
			fmt.Fprintf(w, "data: %s\n\n", frame)
		} else {
			frame, _ := json.Marshal(dto.StreamChunk{Done: true, Result: res})
			fmt.Fprintf(w, "data: %s\n\n", frame)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

func (c *chatController) GetUsage(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	check, err := c.contextService.CanSendMessage(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get usage", check.Usage))
}
