package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strings"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/cli/session"
	"NoteKeeper/internal/config"
)

type noteEditCmd struct{}

func (noteEditCmd) Name() string        { return "edit" }
func (noteEditCmd) Description() string { return "Заменить содержимое заметки целиком" }
func (noteEditCmd) Usage() string {
	return "edit <id> <title> <content> <category> [--tags a,b] [--image url]"
}

func (noteEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(Out)
	tags := fs.String("tags", "", "теги через запятую")
	image := fs.String("image", "", "внешний URL картинки")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() != 4 {
		return ErrUsage
	}
	token, err := loadToken()
	if err != nil {
		return err
	}
	u, err := (session.Store{}).LoadUser()
	if err != nil {
		return fmt.Errorf("not logged in, run: nkcli login <email> <password>")
	}

	payload := NotePayload{
		Title:    fs.Arg(1),
		Content:  fs.Arg(2),
		Category: fs.Arg(3),
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

	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/notes/" + fs.Arg(0)
	resp, body, err := api.PutJSON(ctx, endpoint, payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s", api.Message(body))
	}
	fmt.Fprintln(Out, "Updated")
	return nil
}

func init() { RegisterCmd(noteEditCmd{}) }
