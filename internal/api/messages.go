package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifeec/go-backend/internal/models"
	"github.com/lifeec/go-backend/internal/repository"
)

type sendMessageRequest struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if req.SenderID == "" || req.ReceiverID == "" || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "senderId, receiverId and content are required"})
		return
	}

	message := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		Timestamp:  time.Now().UTC(),
	}

	if err := h.store.CreateMessage(c.Request.Context(), message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error sending message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message})
}

func (h *Handler) getConversation(c *gin.Context) {
	userID := c.Param("userId")
	otherUserID := c.Param("otherUserId")

	messages, err := h.store.GetConversation(c.Request.Context(), userID, otherUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error fetching conversation"})
		return
	}

	// Inbound messages are considered read once the conversation is opened.
	if err := h.store.MarkConversationRead(c.Request.Context(), otherUserID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error updating read state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "messages": messages})
}

func (h *Handler) getRecentConversations(c *gin.Context) {
	conversations, err := h.store.ListRecentConversations(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error fetching conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "conversations": conversations})
}

type markReadRequest struct {
	MessageIDs []string `json:"messageIds"`
}

func (h *Handler) markMessagesRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if err := h.store.MarkMessagesRead(c.Request.Context(), req.MessageIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error marking messages read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Messages marked as read"})
}

func (h *Handler) deleteMessage(c *gin.Context) {
	err := h.store.DeleteMessage(c.Request.Context(), c.Param("messageId"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error deleting message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message deleted successfully"})
}
