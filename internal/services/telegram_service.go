package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// TelegramService pushes alert notifications to a staff chat via the
// Bot API. Missing token or chat id turns every send into a no-op.
type TelegramService struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewTelegramService(botToken string) *TelegramService {
	return &TelegramService{
		token:   botToken,
		baseURL: fmt.Sprintf("https://api.telegram.org/bot%s", botToken),
		client:  &http.Client{},
	}
}

type tgResp struct {
	Ok          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *TelegramService) SendMessage(chatID int64, text string) error {
	if t == nil || t.token == "" || chatID == 0 {
		log.Printf("[tg][skip] token or chatID empty (token? %v chatID=%d)", t != nil && t.token != "", chatID)
		return nil
	}
	body := map[string]any{
		"chat_id":                  chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, t.baseURL+"/sendMessage", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var api tgResp
	_ = json.Unmarshal(respBody, &api)
	if resp.StatusCode != http.StatusOK || !api.Ok {
		return fmt.Errorf("telegram sendMessage failed: status=%d ok=%v desc=%s", resp.StatusCode, api.Ok, api.Description)
	}
	return nil
}
