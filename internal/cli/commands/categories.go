package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/config"
)

// CategoryView — клиентский вид категории со счётчиком заметок.
type CategoryView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NoteCount int64  `json:"note_count"`
}

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "Показать категории со счётчиками заметок" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/categories"
	resp, body, err := api.GetJSON(ctx, endpoint, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error: %s", api.Message(body))
	}
	var cats []CategoryView
	if err := json.Unmarshal(body, &cats); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if len(cats) == 0 {
		fmt.Fprintln(Out, "Нет категорий")
		return nil
	}
	for _, c := range cats {
		fmt.Fprintf(Out, "- %s  %s (%d)\n", c.ID, c.Name, c.NoteCount)
	}
	return nil
}

type catAddCmd struct{}

func (catAddCmd) Name() string        { return "catadd" }
func (catAddCmd) Description() string { return "Создать категорию" }
func (catAddCmd) Usage() string       { return "catadd <name>" }

func (catAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := loadToken()
	if err != nil {
		return err
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/categories"
	resp, body, err := api.PostJSON(ctx, endpoint, map[string]string{"name": args[0]}, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s", api.Message(body))
	}
	var c CategoryView
	if err := json.Unmarshal(body, &c); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	fmt.Fprintf(Out, "Created: %s (%s)\n", c.Name, c.ID)
	return nil
}

type catDelCmd struct{}

func (catDelCmd) Name() string        { return "catdel" }
func (catDelCmd) Description() string { return "Удалить категорию" }
func (catDelCmd) Usage() string       { return "catdel <id>" }

func (catDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := loadToken()
	if err != nil {
		return err
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/categories/" + args[0]
	resp, body, err := api.Delete(ctx, endpoint, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s", api.Message(body))
	}
	fmt.Fprintln(Out, api.Message(body))
	return nil
}

func init() {
	RegisterCmd(categoriesCmd{})
	RegisterCmd(catAddCmd{})
	RegisterCmd(catDelCmd{})
}
