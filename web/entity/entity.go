// Package entity defines the response shapes of the publigo API. Views are
// the serialization boundary: password material never appears in any of them.
package entity

import (
	"publigo/database/model"
)

// Msg represents a standard API response message with success status, message text, and optional data object.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg,omitempty"`
	Obj     any    `json:"obj,omitempty"`
}

// FieldError carries field-level detail for a validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrorBody is the error envelope returned on 4xx responses.
type ErrorBody struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// UtilisateurView is the public read view of a user.
type UtilisateurView struct {
	Id    int      `json:"id"`
	Login string   `json:"login"`
	Mail  string   `json:"mail"`
	Roles []string `json:"roles"`
}

// PublicationView is the read view of a publication, embedding its author.
type PublicationView struct {
	Id              int             `json:"id"`
	Message         string          `json:"message"`
	DatePublication string          `json:"datePublication"`
	Auteur          UtilisateurView `json:"auteur"`
}

const dateFormat = "2006-01-02T15:04:05Z07:00"

func NewUtilisateurView(u *model.Utilisateur) UtilisateurView {
	return UtilisateurView{
		Id:    u.Id,
		Login: u.Login,
		Mail:  u.Mail,
		Roles: u.EffectiveRoles(),
	}
}

func NewUtilisateurViews(users []model.Utilisateur) []UtilisateurView {
	views := make([]UtilisateurView, 0, len(users))
	for i := range users {
		views = append(views, NewUtilisateurView(&users[i]))
	}
	return views
}

func NewPublicationView(p *model.Publication) PublicationView {
	view := PublicationView{
		Id:              p.Id,
		Message:         p.Message,
		DatePublication: p.DatePublication.Format(dateFormat),
	}
	if p.Auteur != nil {
		view.Auteur = NewUtilisateurView(p.Auteur)
	}
	return view
}

func NewPublicationViews(publications []model.Publication) []PublicationView {
	views := make([]PublicationView, 0, len(publications))
	for i := range publications {
		views = append(views, NewPublicationView(&publications[i]))
	}
	return views
}
