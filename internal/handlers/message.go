package handlers

import (
	"errors"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/pigeon/internal/models"
	"github.com/example/pigeon/internal/services"
	"github.com/example/pigeon/internal/store"
)

// MessageHandler bundles dependencies for messaging endpoints.
type MessageHandler struct {
	users    store.Users
	messages store.Messages
	notifier services.Notifier
}

// NewMessageHandler constructs a MessageHandler.
func NewMessageHandler(users store.Users, messages store.Messages, notifier services.Notifier) *MessageHandler {
	return &MessageHandler{users: users, messages: messages, notifier: notifier}
}

type sendMessageRequest struct {
	UID     string `json:"uid" validate:"required"`
	FID     string `json:"fid" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SendMessage persists a message from uid to fid and notifies the recipient
// by SMS. Persisting and notifying are not transactional: when the notifier
// fails the message is already stored, and the caller is told delivery
// failed.
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil || !requestValid(req) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": "Invalid Request"})
	}

	if _, err := h.users.Get(c.UserContext(), req.UID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"data": "Invalid Account"})
		}
		log.Printf("send-message: store read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	friend, err := h.users.Get(c.UserContext(), req.FID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"data": "Invalid Account"})
		}
		log.Printf("send-message: store read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	message := models.Message{
		MID:      uuid.NewString(),
		Sender:   req.UID,
		Receiver: req.FID,
		Text:     req.Message,
		SentAt:   time.Now(),
	}

	if err := h.messages.Create(c.UserContext(), &message); err != nil {
		log.Printf("send-message: store write failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	if err := h.notifier.Send(friend.PhoneNumber, req.Message); err != nil {
		log.Printf("send-message: sms notification failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"data": "An error occurred"})
	}

	return c.JSON(fiber.Map{"data": "Message Sent!"})
}

// MessageHistory returns every message exchanged between uid and fid, both
// directions, sorted by send time ascending. Neither user's existence is
// checked.
func (h *MessageHandler) MessageHistory(c *fiber.Ctx) error {
	uid := c.Params("uid")
	fid := c.Params("fid")
	if uid == "" || fid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": "Incomplete request"})
	}

	sent, err := h.messages.Between(c.UserContext(), uid, fid)
	if err != nil {
		log.Printf("message-history: store query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	received, err := h.messages.Between(c.UserContext(), fid, uid)
	if err != nil {
		log.Printf("message-history: store query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	history := make([]models.Message, 0, len(sent)+len(received))
	history = append(history, sent...)
	history = append(history, received...)

	sort.Slice(history, func(i, j int) bool {
		return history[i].SentAt.Before(history[j].SentAt)
	})

	return c.JSON(fiber.Map{"data": "Successful!", "messages": history})
}

// DeleteMessage removes a message, but only when the caller is its sender.
func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	mid := c.Params("mid")
	uid := c.Params("uid")
	if mid == "" || uid == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"data": "No ID received"})
	}

	message, err := h.messages.Get(c.UserContext(), mid)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"data": "Message not found"})
		}
		log.Printf("delete-message: store read failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	if message.Sender != uid {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"data": "Access Denied"})
	}

	if err := h.messages.Delete(c.UserContext(), mid); err != nil {
		log.Printf("delete-message: store delete failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"data": "An error occurred"})
	}

	return c.JSON(fiber.Map{"data": "Message Deleted!"})
}
