package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"NoteKeeper/internal/cli/api"
	"NoteKeeper/internal/cli/session"
	"NoteKeeper/internal/config"
)

// NoteView — клиентский вид заметки из ответов сервера.
type NoteView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Author   string `json:"author"`
	Category *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"category"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl"`
	Photo    string   `json:"photo"`
	User     *struct {
		Name string `json:"name"`
	} `json:"user"`
	UpdatedAt string `json:"updatedAt"`
}

// NotePayload — тело create/update заметки.
type NotePayload struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// loadToken достаёт токен сохранённой сессии для команд, требующих входа.
func loadToken() (string, error) {
	t, err := (session.Store{}).LoadToken()
	if err != nil {
		return "", fmt.Errorf("not logged in, run: nkcli login <email> <password>")
	}
	return t, nil
}

func printNote(n NoteView) {
	cat := "-"
	if n.Category != nil {
		cat = n.Category.Name
	}
	fmt.Fprintf(Out, "- %s  [%s]  %s\n", n.ID, cat, n.Title)
}

type notesCmd struct{}

func (notesCmd) Name() string        { return "notes" }
func (notesCmd) Description() string { return "Показать заметки (с фильтрами и пагинацией)" }
func (notesCmd) Usage() string {
	return "notes [--page N] [--limit N] [--search text] [--category id]"
}

func (notesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("notes", flag.ContinueOnError)
	fs.SetOutput(Out)
	page := fs.Int("page", 1, "номер страницы")
	limit := fs.Int("limit", 10, "размер страницы")
	search := fs.String("search", "", "поиск по заголовку и тексту")
	category := fs.String("category", "", "фильтр по id категории")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	if fs.NArg() != 0 {
		return ErrUsage
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(*page))
	q.Set("limit", strconv.Itoa(*limit))
	if *search != "" {
		q.Set("search", *search)
	}
	if *category != "" {
		q.Set("category", *category)
	}
	endpoint := strings.TrimRight(cfg.ServerURL, "/") + "/api/notes?" + q.Encode()

	// список публичный, токен не обязателен
	token, _ := (session.Store{}).LoadToken()
	resp, body, err := api.GetJSON(ctx, endpoint, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server error: %s", api.Message(body))
	}

	var payload struct {
		Notes []NoteView `json:"notes"`
		Total int64      `json:"total"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if len(payload.Notes) == 0 {
		fmt.Fprintln(Out, "Нет заметок")
		return nil
	}
	for _, n := range payload.Notes {
		printNote(n)
	}
	fmt.Fprintf(Out, "Всего: %d\n", payload.Total)
	return nil
}

func init() { RegisterCmd(notesCmd{}) }
