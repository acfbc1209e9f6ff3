package models

import "time"

type PixKeyType string

const (
	PixKeyTypeEmail  PixKeyType = "EMAIL"
	PixKeyTypeCPF    PixKeyType = "CPF"
	PixKeyTypePhone  PixKeyType = "PHONE"
	PixKeyTypeRandom PixKeyType = "RANDOM"
	PixKeyTypeOther  PixKeyType = "OTHER"
)

// IsValid reports whether t is one of the known key types. The type is
// descriptive metadata only, it never drives validation of the key string.
func (t PixKeyType) IsValid() bool {
	switch t {
	case PixKeyTypeEmail, PixKeyTypeCPF, PixKeyTypePhone, PixKeyTypeRandom, PixKeyTypeOther:
		return true
	}
	return false
}

type PixKey struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Type      PixKeyType `json:"type" db:"type"`
	Key       string     `json:"key" db:"key"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
