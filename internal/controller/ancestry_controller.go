package controller

import (
	"io"

	"ancestral-travel-be/internal/pkg/serverutils"
	"ancestral-travel-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAncestryController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type ancestryController struct {
	ancestryService service.IAncestryService
}

func NewAncestryController(ancestryService service.IAncestryService) IAncestryController {
	return &ancestryController{
		ancestryService: ancestryService,
	}
}

func (c *ancestryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ancestry/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
}

func (c *ancestryController) Upload(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Arquivo é obrigatório")
	}

	sessionId, err := uuid.Parse(ctx.FormValue("chat_session_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "id de sessão inválido")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.ancestryService.Upload(ctx.Context(), userId, &service.UploadAncestryInput{
		ChatSessionId: sessionId,
		Filename:      fileHeader.Filename,
		MimeType:      fileHeader.Header.Get("Content-Type"),
		Data:          data,
	})
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success process ancestry file", res))
}
