package commands

import (
	"context"
	"fmt"

	"NoteKeeper/internal/cli/session"
	"NoteKeeper/internal/config"
)

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Показать текущего пользователя" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(_ context.Context, _ *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	u, err := (session.Store{}).LoadUser()
	if err != nil {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	fmt.Fprintf(Out, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	return nil
}

func init() { RegisterCmd(whoamiCmd{}) }
