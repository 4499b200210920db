package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/config"
)

type noteDelCmd struct{}

func (noteDelCmd) Name() string        { return "del" }
func (noteDelCmd) Description() string { return "Удалить заметку" }
func (noteDelCmd) Usage() string       { return "del <id>" }

func (noteDelCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := loadToken()
	if err != nil {
		return err
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/notes/" + args[0]
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

func init() { RegisterCmd(noteDelCmd{}) }
