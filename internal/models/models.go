package models

import "time"

type User struct {
	Name       string
	Email      string
	Password   string
	Token      string
	IsVerified bool
	CreatedAt  time.Time
}

type EmailMessage struct {
	Email string `json:"to"`
	Name  string `json:"name"`
	Link  string `json:"link"`
}
