package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/example/pigeon/internal/config"
	"github.com/example/pigeon/internal/middleware"
	"github.com/example/pigeon/internal/models"
	"github.com/example/pigeon/internal/store"
)

// ---- in-memory fakes ----

type fakeUsers struct {
	byUID map[string]*models.User
	err   error
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byUID: map[string]*models.User{}}
	for _, u := range users {
		f.byUID[u.UID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byUID[user.UID]; ok {
		return store.ErrDuplicateKey
	}
	clone := *user
	f.byUID[user.UID] = &clone
	return nil
}

func (f *fakeUsers) Get(_ context.Context, uid string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.byUID[uid]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUsers) Update(_ context.Context, uid string, fields map[string]interface{}) error {
	if f.err != nil {
		return f.err
	}
	user, ok := f.byUID[uid]
	if !ok {
		return store.ErrNotFound
	}
	if v, ok := fields["first_name"].(string); ok {
		user.FirstName = v
	}
	if v, ok := fields["last_name"].(string); ok {
		user.LastName = v
	}
	if v, ok := fields["phone_number"].(string); ok {
		user.PhoneNumber = v
	}
	if v, ok := fields["password_hash"].(string); ok {
		user.PasswordHash = v
	}
	return nil
}

func (f *fakeUsers) FindByFirstName(_ context.Context, name string) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.byUID {
		if u.FirstName == name {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) FindByLastName(_ context.Context, name string) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.User
	for _, u := range f.byUID {
		if u.LastName == name {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUsers) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byUID {
		if u.PhoneNumber == phone {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

type fakeMessages struct {
	byMID map[string]*models.Message
	err   error
}

func newFakeMessages(messages ...*models.Message) *fakeMessages {
	f := &fakeMessages{byMID: map[string]*models.Message{}}
	for _, m := range messages {
		f.byMID[m.MID] = m
	}
	return f
}

func (f *fakeMessages) Create(_ context.Context, message *models.Message) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byMID[message.MID]; ok {
		return store.ErrDuplicateKey
	}
	clone := *message
	f.byMID[message.MID] = &clone
	return nil
}

func (f *fakeMessages) Get(_ context.Context, mid string) (*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	message, ok := f.byMID[mid]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *message
	return &clone, nil
}

func (f *fakeMessages) Delete(_ context.Context, mid string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.byMID, mid)
	return nil
}

func (f *fakeMessages) Between(_ context.Context, sender, receiver string) ([]models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Message
	for _, m := range f.byMID {
		if m.Sender == sender && m.Receiver == receiver {
			out = append(out, *m)
		}
	}
	return out, nil
}

type notification struct {
	to   string
	body string
}

type fakeNotifier struct {
	sent []notification
	err  error
}

func (f *fakeNotifier) Send(to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, notification{to: to, body: body})
	return nil
}

// ---- test app wiring ----

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
		StoreTimeout: time.Second,
	}
}

func newTestApp(users store.Users, messages store.Messages, notifier *fakeNotifier) *fiber.App {
	app := fiber.New()
	cfg := testConfig()

	accountHandler := NewAccountHandler(users)
	messageHandler := NewMessageHandler(users, messages, notifier)
	authHandler := NewAuthHandler(users, cfg)

	app.Post("/create-account", accountHandler.CreateAccount)
	app.Post("/update-profile", accountHandler.UpdateProfile)
	app.Get("/find-by-id/:id", accountHandler.FindByID)
	app.Get("/find-by-name/:name", accountHandler.FindByName)
	app.Get("/message-history/:uid/:fid", messageHandler.MessageHistory)
	app.Post("/send-message", messageHandler.SendMessage)
	app.Post("/delete-message/:mid/:uid", messageHandler.DeleteMessage)
	app.Post("/login", authHandler.Login)
	app.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, url string, body interface{}, headers ...map[string]string) *http.Response {
	t.Helper()

	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
