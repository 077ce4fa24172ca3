package models

import "strings"

// ContactForm holds the values a visitor typed into the contact form
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (f ContactForm) Trimmed() ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Message: strings.TrimSpace(f.Message),
	}
}

// ContactTicket is a validated submission handed to a delivery channel
type ContactTicket struct {
	ID   string      `json:"id"`
	Form ContactForm `json:"form"`
}
