package controller

import (
	"strings"

	"ai-storyteller-be/internal/constant"
	"ai-storyteller-be/internal/dto"
	"ai-storyteller-be/internal/pkg/serverutils"
	"ai-storyteller-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type chatController struct {
	storyService service.IStoryService
}

func NewChatController(storyService service.IStoryService) IChatController {
	return &chatController{
		storyService: storyService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
	r.Get("/health", c.Health)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	// A missing or malformed body degrades to the empty request, which
	// short-circuits below.
	_ = ctx.BodyParser(&req)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sessionID := strings.TrimSpace(req.Session)
	if sessionID == "" {
		sessionID = dto.DefaultSessionID
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ctx.JSON(dto.ChatReplyResponse{
			Type:  "chat",
			Reply: constant.EmptyMessageReply,
		})
	}

	res, err := c.storyService.HandleMessage(ctx.Context(), sessionID, message)
	if err != nil {
		return err
	}

	switch res.Kind {
	case service.KindChat:
		return ctx.JSON(dto.ChatReplyResponse{
			Type:  "chat",
			Reply: res.Text,
		})

	case service.KindRefinement:
		return ctx.JSON(dto.RefinedResponse{
			Type:  "refined",
			Story: res.Text,
		})

	default:
		// Revisions is set only by the new-story path; a refusal without
		// it came from the refine path, which reports inside the refined
		// envelope rather than a distinct refusal type.
		if res.Revisions == nil {
			return ctx.JSON(dto.RefinedResponse{
				Type:  "refined",
				Story: res.Text,
			})
		}
		return ctx.JSON(dto.StoryResponse{
			Type:              "story",
			Story:             res.Text,
			InternalRevisions: *res.Revisions,
			Status:            string(res.Kind),
		})
	}
}

func (c *chatController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.HealthResponse{Ok: true})
}
