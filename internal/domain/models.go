package domain

import "time"

// Document statuses
const (
	StatusCompleted = "completed"
	StatusDraft     = "draft"
	StatusArchived  = "archived"
)

// FolderRef is the folder summary embedded in document reads. Populated
// from the live folder row at read time, never persisted on the document.
type FolderRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Document is a generated legal document owned by a single user.
// WordCount and Preview are derived from Content and are recomputed
// together whenever Content changes - they are never stale independently.
type Document struct {
	ID         string     `json:"id"`
	UserID     string     `json:"-"`
	FolderID   *string    `json:"folderId"`
	Folder     *FolderRef `json:"folder,omitempty"`
	Title      string     `json:"title"`
	Type       string     `json:"type"`
	Content    string     `json:"content"`
	Prompt     string     `json:"prompt"`
	Status     string     `json:"status"`
	IsFavorite bool       `json:"isFavorite"`
	Tags       []string   `json:"tags"`
	WordCount  int        `json:"wordCount"`
	Preview    string     `json:"preview"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Folder groups documents for one user. DocumentCount is computed from the
// live document table at read time, never persisted as a counter.
type Folder struct {
	ID            string    `json:"id"`
	UserID        string    `json:"-"`
	Name          string    `json:"name"`
	Color         string    `json:"color"`
	DocumentCount int       `json:"documentCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ChatSession is a persisted conversation. UpdatedAt is refreshed on every
// message exchange so listings sort by recent activity.
type ChatSession struct {
	ID        string        `json:"id"`
	UserID    string        `json:"-"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Messages  []ChatMessage `json:"messages,omitempty"`
}

// Chat message senders
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// ChatMessage is one side of an exchange. Immutable once created.
type ChatMessage struct {
	ID        string    `json:"id"`
	SessionID string    `json:"-"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}
