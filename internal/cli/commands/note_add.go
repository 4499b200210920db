package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"strings"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/cli/session"
	"NoteKeeper/internal/config"
)

type noteAddCmd struct{}

func (noteAddCmd) Name() string        { return "add" }
func (noteAddCmd) Description() string { return "Создать заметку" }
func (noteAddCmd) Usage() string {
	return "add <title> <content> <category> [--tags a,b] [--image url]"
}

func (noteAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(Out)
	tags := fs.String("tags", "", "теги через запятую")
	image := fs.String("image", "", "внешний URL картинки")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() != 3 {
		return ErrUsage
	}
	token, err := loadToken()
	if err != nil {
		return err
	}
	// автор — имя текущего пользователя
	u, err := (session.Store{}).LoadUser()
	if err != nil {
		return fmt.Errorf("not logged in, run: nkcli login <email> <password>")
	}

	payload := NotePayload{
		Title:    fs.Arg(0),
		Content:  fs.Arg(1),
		Category: fs.Arg(2),
		Author:   u.Name,
		ImageURL: *image,
	}
	if *tags != "" {
		for _, t := range strings.Split(*tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				payload.Tags = append(payload.Tags, t)
			}
		}
	}

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/notes"
	resp, body, err := api.PostJSON(ctx, endpoint, payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s", api.Message(body))
	}
	var n NoteView
	if err := json.Unmarshal(body, &n); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:    %s\n", n.ID)
	fmt.Fprintf(Out, "  title: %s\n", n.Title)
	return nil
}

func init() { RegisterCmd(noteAddCmd{}) }
