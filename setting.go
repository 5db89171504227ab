package main

import (
	"publigo/database"
	"publigo/database/model"
	"publigo/util/crypto"
)

// resetUserPassword rehashes and stores a new password for the given login.
// The complexity rules still apply, the CLI is not a backdoor around them.
func resetUserPassword(login string, password string) error {
	if err := crypto.CheckPasswordComplexity(password); err != nil {
		return err
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()
	user := &model.Utilisateur{}
	if err := db.Where("login = ?", login).First(user).Error; err != nil {
		return err
	}
	user.Password = hash
	return db.Save(user).Error
}
