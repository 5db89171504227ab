// Package model defines the persistent entities of the publigo API:
// users (Utilisateur) and their publications.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RoleUser is the base role every authenticated user holds, whether stored or not.
const RoleUser = "ROLE_USER"

// Roles is a set of role names stored as a JSON array in a single column.
type Roles []string

func (r Roles) Value() (driver.Value, error) {
	if r == nil {
		r = Roles{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (r *Roles) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*r = Roles{}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan roles from %T", value)
	}
}

// Utilisateur is a registered user. Password holds only the bcrypt hash;
// PlainPassword is a transient input field and is never persisted.
type Utilisateur struct {
	Id            int           `json:"id" gorm:"primaryKey;autoIncrement"`
	Login         string        `json:"login" gorm:"size:20;uniqueIndex;not null"`
	Mail          string        `json:"mail" gorm:"size:255;uniqueIndex;not null"`
	Password      string        `json:"-" gorm:"size:255;not null"`
	PlainPassword string        `json:"-" gorm:"-"`
	Roles         Roles         `json:"roles" gorm:"type:text"`
	Publications  []Publication `json:"-" gorm:"foreignKey:AuteurId;constraint:OnDelete:CASCADE"`
}

// EffectiveRoles returns the stored roles plus the implicit base role.
// The base role is derived at read time, never persisted.
func (u *Utilisateur) EffectiveRoles() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	seen := make(map[string]bool, len(u.Roles)+1)
	for _, role := range u.Roles {
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}
	if !seen[RoleUser] {
		roles = append(roles, RoleUser)
	}
	return roles
}

// EraseCredentials discards the transient plaintext password.
func (u *Utilisateur) EraseCredentials() {
	u.PlainPassword = ""
}

// Publication is a short text post. Auteur and DatePublication are set by the
// server at creation time and are immutable through the API.
type Publication struct {
	Id              int          `json:"id" gorm:"primaryKey;autoIncrement"`
	Message         string       `json:"message" gorm:"size:200;not null"`
	DatePublication time.Time    `json:"datePublication" gorm:"not null"`
	AuteurId        int          `json:"-" gorm:"index;not null"`
	Auteur          *Utilisateur `json:"auteur,omitempty" gorm:"foreignKey:AuteurId"`
}
