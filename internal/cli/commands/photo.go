package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/config"
)

type photoCmd struct{}

func (photoCmd) Name() string        { return "photo" }
func (photoCmd) Description() string { return "Загрузить фото к заметке" }
func (photoCmd) Usage() string       { return "photo <note-id> <file>" }

func (photoCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	token, err := loadToken()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/notes/" + args[0] + "/photo"
	resp, body, err := api.PostFile(ctx, endpoint, "photo", args[1], data, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s", api.Message(body))
	}
	var n NoteView
	if err := json.Unmarshal(body, &n); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	fmt.Fprintf(Out, "Uploaded: %s\n", n.Photo)
	return nil
}

func init() { RegisterCmd(photoCmd{}) }
