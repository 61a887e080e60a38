package domain

import "time"

type User struct {
	ID        string    `json:"id"`
	Topics    []string  `json:"interested_topics"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterUserInput struct {
	ID     string
	Topics []string
}
