package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TelegramID хранит идентификатор чата Telegram.
// В JSON принимается как строка или как число, отдаётся всегда строкой.
// Пустая строка и "0" означают, что аккаунт не привязан.
type TelegramID string

// UnmarshalJSON принимает "12345", 12345 и null.
func (t *TelegramID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("tg_id: %w", err)
		}
		*t = TelegramID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("tg_id: %w", err)
	}
	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("tg_id: %w", err)
	}
	*t = TelegramID(n.String())
	return nil
}

// Bound сообщает, привязан ли аккаунт Telegram.
func (t TelegramID) Bound() bool {
	s := strings.TrimSpace(string(t))
	return s != "" && s != "0"
}

// ChatID возвращает числовой идентификатор чата.
func (t TelegramID) ChatID() (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("tg_id %q: %w", string(t), err)
	}
	return id, nil
}
