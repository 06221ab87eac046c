package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifeec/go-backend/internal/models"
)

func (s *SQLiteStore) CreateMessage(ctx context.Context, m *models.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, content, is_read, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.SenderID, m.ReceiverID, m.Content, m.IsRead, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("error inserting message: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetConversation(ctx context.Context, userID, otherUserID string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, content, is_read, timestamp FROM messages
		WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
		ORDER BY timestamp ASC`,
		userID, otherUserID, otherUserID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching conversation: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (s *SQLiteStore) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE messages SET is_read = 1 WHERE sender_id = ? AND receiver_id = ? AND is_read = 0`,
		senderID, receiverID,
	)
	if err != nil {
		return fmt.Errorf("error marking conversation read: %w", err)
	}
	return nil
}

func (s *SQLiteStore) MarkMessagesRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE messages SET is_read = 1 WHERE id IN (?` + strings.Repeat(", ?", len(ids)-1) + `)`
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error marking messages read: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListRecentConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	// Latest message per conversation partner, then unread counts per partner.
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.sender_id, m.receiver_id, m.content, m.is_read, m.timestamp
		FROM messages m
		JOIN (
			SELECT CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS partner,
				MAX(timestamp) AS latest
			FROM messages
			WHERE sender_id = ? OR receiver_id = ?
			GROUP BY partner
		) last ON (CASE WHEN m.sender_id = ? THEN m.receiver_id ELSE m.sender_id END) = last.partner
			AND m.timestamp = last.latest
		ORDER BY m.timestamp DESC`,
		userID, userID, userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	lastMessages := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.IsRead, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		lastMessages = append(lastMessages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	conversations := make([]models.Conversation, 0, len(lastMessages))
	for _, m := range lastMessages {
		partnerID := m.SenderID
		if partnerID == userID {
			partnerID = m.ReceiverID
		}

		partner, err := s.GetUserByID(ctx, partnerID)
		if err != nil && err != ErrNotFound {
			return nil, err
		}

		var unread int
		if err := s.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM messages WHERE sender_id = ? AND receiver_id = ? AND is_read = 0`,
			partnerID, userID,
		).Scan(&unread); err != nil {
			return nil, fmt.Errorf("error counting unread messages: %w", err)
		}

		conversations = append(conversations, models.Conversation{
			Contact:     partner,
			LastMessage: m.Content,
			Timestamp:   m.Timestamp,
			UnreadCount: unread,
		})
	}
	return conversations, nil
}

func (s *SQLiteStore) DeleteMessage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}
	return rowsAffectedOrNotFound(res)
}
