package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"NoteKeeper/internal/config"
)

// Store — файловое хранилище клиентской сессии: токен и текущий пользователь.
// Жизненный цикл явный: команды загружают сессию на старте, logout очищает её.
type Store struct{}

// User — сохранённый публичный вид текущего пользователя.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func dir() (string, error) {
	p, err := config.SessionDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func tokenPath() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "auth_token"), nil
}

func userPath() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "current_user"), nil
}

// SaveToken сохраняет auth-токен в файл.
func (Store) SaveToken(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	p, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

// LoadToken читает auth-токен из файла.
func (Store) LoadToken() (string, error) {
	p, err := tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	if len(b) == 0 {
		return "", errors.New("empty token file")
	}
	return string(b), nil
}

// SaveUser сохраняет публичный вид текущего пользователя.
func (Store) SaveUser(u User) error {
	p, err := userPath()
	if err != nil {
		return err
	}
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// LoadUser читает текущего пользователя.
func (Store) LoadUser() (User, error) {
	var u User
	p, err := userPath()
	if err != nil {
		return u, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return u, err
	}
	if err := json.Unmarshal(b, &u); err != nil {
		return u, err
	}
	return u, nil
}

// Clear удаляет сессию целиком. Отсутствующие файлы не ошибка.
func (Store) Clear() error {
	tp, err := tokenPath()
	if err != nil {
		return err
	}
	up, err := userPath()
	if err != nil {
		return err
	}
	if err := os.Remove(tp); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(up); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
