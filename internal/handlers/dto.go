package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"NoteKeeper/internal/model"
)

// UserDTO — публичный вид учётной записи: без хеша пароля.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OwnerDTO — минимальный вид владельца заметки: только имя.
type OwnerDTO struct {
	Name string `json:"name"`
}

// NoteDTO — ответный вид заметки с полной категорией и владельцем.
type NoteDTO struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Category  *model.Category `json:"category"`
	Author    string          `json:"author"`
	Tags      []string        `json:"tags"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Photo     string          `json:"photo,omitempty"`
	User      *OwnerDTO       `json:"user,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toNoteDTO(n *model.Note) NoteDTO {
	dto := NoteDTO{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Category:  n.Category,
		Author:    n.Author,
		Tags:      n.Tags,
		ImageURL:  n.ImageURL,
		Photo:     n.Photo,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if dto.Tags == nil {
		dto.Tags = []string{}
	}
	if n.User != nil {
		dto.User = &OwnerDTO{Name: n.User.Name}
	}
	return dto
}

// notePayload — тело запроса создания/обновления заметки.
// category принимается и строкой, и объектом {"name": ...}.
type notePayload struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Category json.RawMessage `json:"category"`
	Author   string          `json:"author"`
	Tags     []string        `json:"tags"`
	ImageURL string          `json:"imageUrl"`
}

// categoryName нормализует поле category к строке имени.
func (p *notePayload) categoryName() string {
	if len(p.Category) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(p.Category, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(p.Category, &obj); err == nil {
		return obj.Name
	}
	return ""
}

// writeJSON сериализует ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage отвечает телом {"message": ...}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
