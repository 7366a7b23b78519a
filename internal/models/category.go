package models

import "time"

// Category пользовательская категория ассетов, имя уникально в пределах пользователя.
type Category struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
