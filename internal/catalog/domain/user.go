package domain

import (
	"errors"
)

// UserID représente l'identifiant unique d'un utilisateur
type UserID int64

// User représente un profil utilisateur épuré
// Les champs name et street de la source sont écartés à l'ingestion; les
// autres attributs passent tels quels
type User struct {
	id         UserID
	attributes map[string]interface{}
}

// NewUser crée une nouvelle instance de User avec validation
func NewUser(id UserID, attributes map[string]interface{}) (*User, error) {
	if id <= 0 {
		return nil, errors.New("invalid user ID")
	}

	attrs := make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		attrs[k] = v
	}

	return &User{
		id:         id,
		attributes: attrs,
	}, nil
}

// ID retourne l'identifiant de l'utilisateur
func (u *User) ID() UserID {
	return u.id
}

// Attribute retourne un attribut conservé du profil
func (u *User) Attribute(key string) (interface{}, bool) {
	v, ok := u.attributes[key]
	return v, ok
}

// AttributeCount retourne le nombre d'attributs conservés
func (u *User) AttributeCount() int {
	return len(u.attributes)
}
