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

type noteGetCmd struct{}

func (noteGetCmd) Name() string        { return "note" }
func (noteGetCmd) Description() string { return "Показать одну заметку" }
func (noteGetCmd) Usage() string       { return "note <id>" }

func (noteGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := loadToken()
	if err != nil {
		return err
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/notes/" + args[0]
	resp, body, err := api.GetJSON(ctx, endpoint, token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s", api.Message(body))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error: %s", api.Message(body))
	}

	var n NoteView
	if err := json.Unmarshal(body, &n); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	fmt.Fprintf(Out, "id:       %s\n", n.ID)
	fmt.Fprintf(Out, "title:    %s\n", n.Title)
	fmt.Fprintf(Out, "author:   %s\n", n.Author)
	if n.Category != nil {
		fmt.Fprintf(Out, "category: %s\n", n.Category.Name)
	}
	if len(n.Tags) > 0 {
		fmt.Fprintf(Out, "tags:     %s\n", strings.Join(n.Tags, ", "))
	}
	if n.Photo != "" {
		fmt.Fprintf(Out, "photo:    %s\n", n.Photo)
	} else if n.ImageURL != "" {
		fmt.Fprintf(Out, "image:    %s\n", n.ImageURL)
	}
	fmt.Fprintln(Out, "")
	fmt.Fprintln(Out, n.Content)
	return nil
}

func init() { RegisterCmd(noteGetCmd{}) }
