package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkRideService/internal/domain"
)

// Client клиент сервиса пользователей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FindUser находит пользователя по имени
func (c *Client) FindUser(ctx context.Context, username string) (domain.UserRef, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.UserRef{}, ErrUserNotFound
	}

	endpoint := fmt.Sprintf("%s/internal/users/by-username/%s", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.UserRef{}, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("FindUser: UserService unavailable for username=%s: %v", username, err)
		return domain.UserRef{}, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		c.log.Warn("FindUser: username=%s not found", username)
		return domain.UserRef{}, ErrUserNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.UserRef{}, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.UserRef{}, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if user.ID <= 0 {
		return domain.UserRef{}, fmt.Errorf("%w: user id %d", ErrInvalidResponse, user.ID)
	}

	return domain.UserRef{ID: user.ID, Username: user.Username, Role: domain.ParseUserRole(user.Role)}, nil
}
