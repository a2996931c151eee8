// Package models defines the vault's data types: the encrypted record as it
// is persisted and the plaintext shapes exchanged with callers.
package models

import "time"

// Record is a vault entry exactly as stored. Username, Password and Notes
// hold sealed blobs; Name, URL and Category are plain text.
type Record struct {
	ID        int64
	Name      string
	URL       string
	Username  string
	Password  string
	Notes     *string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordView is a decrypted record returned to an unlocked caller.
type RecordView struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Notes     string    `json:"notes"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordInput carries the plaintext fields of a new record.
type RecordInput struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
	Notes    string `json:"notes"`
	Category string `json:"category"`
}

// RecordPatch describes a partial update. A nil field is left unchanged.
type RecordPatch struct {
	Name     *string `json:"name,omitempty"`
	URL      *string `json:"url,omitempty"`
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Category *string `json:"category,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p RecordPatch) Empty() bool {
	return p.Name == nil && p.URL == nil && p.Username == nil &&
		p.Password == nil && p.Notes == nil && p.Category == nil
}
