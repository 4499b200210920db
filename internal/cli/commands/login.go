package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/cli/session"
	"NoteKeeper/internal/config"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Войти и сохранить токен сессии" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/auth/login"
	req := LoginRequest{Email: args[0], Password: args[1]}
	resp, body, err := api.PostJSON(ctx, endpoint, req, "")
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return errors.New("invalid email or password")
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error: %s", api.Message(body))
	}

	var payload struct {
		Token string       `json:"token"`
		User  session.User `json:"user"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if payload.Token == "" {
		return errors.New("server returned no token")
	}

	store := session.Store{}
	if err := store.SaveToken(payload.Token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := store.SaveUser(payload.User); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	fmt.Fprintf(Out, "Logged in as %s <%s>\n", payload.User.Name, payload.User.Email)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
