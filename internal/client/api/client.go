// Package api: типизированный HTTP-клиент API профиля.
//
// Все ответы сервера приходят в конверте {code, msg, data}; клиент разбирает
// конверт при любом HTTP-статусе и превращает ненулевой код в *APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/magabrotheeeer/profile-settings/internal/http/response"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

const apiPrefix = "/api/v1"

// Client обращается к API профиля от имени одного пользователя.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New создаёт клиента. Если httpClient равен nil, используется клиент с таймаутом 10s.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SetToken задаёт JWT для защищённых запросов.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token возвращает текущий JWT.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Login выполняет вход и запоминает полученный токен.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	const op = "api.Login"
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

// UserInfo загружает профиль текущего пользователя.
func (c *Client) UserInfo(ctx context.Context) (models.UserInfo, error) {
	const op = "api.UserInfo"
	var info models.UserInfo
	if err := c.do(ctx, http.MethodGet, "/user/info", nil, &info); err != nil {
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// ChangePassword отправляет новый пароль и его подтверждение.
func (c *Client) ChangePassword(ctx context.Context, password, repeat string) error {
	const op = "api.ChangePassword"
	body := models.PasswordChange{Password: password, RePassword: repeat}
	if err := c.do(ctx, http.MethodPost, "/user/password", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetNotice отправляет профиль целиком; сервер сохраняет из него настройки уведомлений.
func (c *Client) SetNotice(ctx context.Context, info models.UserInfo) (models.UserInfo, error) {
	const op = "api.SetNotice"
	var out models.UserInfo
	if err := c.do(ctx, http.MethodPost, "/user/notice", info, &out); err != nil {
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}
	if env.Code != response.CodeOK {
		return &APIError{Code: env.Code, Msg: env.Msg}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %w", ErrBadResponse, err)
		}
	}
	return nil
}
