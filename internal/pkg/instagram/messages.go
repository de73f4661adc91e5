package instagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const messagingAPIVersion = "v21.0"

// MessageResponse is the Graph API answer to a sent message.
type MessageResponse struct {
	RecipientID string `json:"recipient_id,omitempty"`
	MessageID   string `json:"message_id,omitempty"`
}

type messageRecipient struct {
	ID        string `json:"id,omitempty"`
	CommentID string `json:"comment_id,omitempty"`
}

type messageText struct {
	Text string `json:"text"`
}

type messageRequest struct {
	Recipient messageRecipient `json:"recipient"`
	Message   messageText      `json:"message"`
}

// SendDM sends a direct message from the connected account userID to the
// Instagram user recipientID.
func (c *Client) SendDM(ctx context.Context, userID, recipientID, text, token string) (*MessageResponse, error) {
	if strings.TrimSpace(recipientID) == "" {
		return nil, errors.New("recipient id is required")
	}
	endpoint := fmt.Sprintf("%s/%s/%s/messages",
		strings.TrimRight(c.BaseURL, "/"), messagingAPIVersion, url.PathEscape(userID))

	return c.sendMessage(ctx, endpoint, "send dm", token, messageRequest{
		Recipient: messageRecipient{ID: recipientID},
		Message:   messageText{Text: text},
	})
}

// SendPrivateReply answers a comment with a private message to its author.
func (c *Client) SendPrivateReply(ctx context.Context, userID, commentID, text, token string) (*MessageResponse, error) {
	if strings.TrimSpace(commentID) == "" {
		return nil, errors.New("comment id is required")
	}
	endpoint := fmt.Sprintf("%s/%s/messages",
		strings.TrimRight(c.BaseURL, "/"), url.PathEscape(userID))

	return c.sendMessage(ctx, endpoint, "private reply", token, messageRequest{
		Recipient: messageRecipient{CommentID: commentID},
		Message:   messageText{Text: text},
	})
}

func (c *Client) sendMessage(ctx context.Context, endpoint, op, token string, payload messageRequest) (*MessageResponse, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("access token is required")
	}
	if strings.TrimSpace(payload.Message.Text) == "" {
		return nil, errors.New("message text is required")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	var out MessageResponse
	if err := c.do(req, op, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
