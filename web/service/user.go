package service

import (
	"publigo/database"
	"publigo/database/model"
	"publigo/logger"
	"publigo/util/crypto"

	"gorm.io/gorm"
)

type UserService struct{}

// CreateUser registers a new user. The plaintext password is checked against
// the complexity rules, hashed, and discarded; only the hash is stored.
func (s *UserService) CreateUser(login string, mail string, plainPassword string) (*model.Utilisateur, error) {
	if err := crypto.CheckPasswordComplexity(plainPassword); err != nil {
		return nil, err
	}
	hash, err := crypto.HashPasswordAsBcrypt(plainPassword)
	if err != nil {
		return nil, err
	}

	user := &model.Utilisateur{
		Login:    login,
		Mail:     mail,
		Password: hash,
		Roles:    model.Roles{},
	}
	db := database.GetDB()
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	user.EraseCredentials()
	return user, nil
}

// CheckUser verifies login credentials and returns the matching user, or nil.
func (s *UserService) CheckUser(login string, password string) *model.Utilisateur {
	db := database.GetDB()

	user := &model.Utilisateur{}
	err := db.Model(model.Utilisateur{}).
		Where("login = ?", login).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

func (s *UserService) GetUser(id int) (*model.Utilisateur, error) {
	db := database.GetDB()

	user := &model.Utilisateur{}
	err := db.First(user, id).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users ordered by login descending.
func (s *UserService) ListUsers() ([]model.Utilisateur, error) {
	db := database.GetDB()

	var users []model.Utilisateur
	err := db.Order("login DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser patches a user's profile. Only the mail and the password are
// writable; a nil field is left untouched. A supplied plaintext password is
// re-checked, re-hashed and discarded.
func (s *UserService) UpdateUser(id int, mail *string, plainPassword *string) (*model.Utilisateur, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if mail != nil {
		user.Mail = *mail
	}
	if plainPassword != nil {
		if err := crypto.CheckPasswordComplexity(*plainPassword); err != nil {
			return nil, err
		}
		hash, err := crypto.HashPasswordAsBcrypt(*plainPassword)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	db := database.GetDB()
	if err := db.Save(user).Error; err != nil {
		return nil, err
	}
	user.EraseCredentials()
	return user, nil
}

// DeleteUser removes a user and all of their publications in one transaction.
func (s *UserService) DeleteUser(id int) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}

	db := database.GetDB()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("auteur_id = ?", user.Id).Delete(&model.Publication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Utilisateur{}, user.Id).Error
	})
}

// ListUserPublications returns one user's publications, newest first.
func (s *UserService) ListUserPublications(id int) ([]model.Publication, error) {
	if _, err := s.GetUser(id); err != nil {
		return nil, err
	}

	db := database.GetDB()
	var publications []model.Publication
	err := db.Preload("Auteur").
		Where("auteur_id = ?", id).
		Order("date_publication DESC").
		Find(&publications).
		Error
	if err != nil {
		return nil, err
	}
	return publications, nil
}
