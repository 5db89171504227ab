package service

import (
	"time"

	"publigo/database"
	"publigo/database/model"
	"publigo/util/common"
)

// ErrNoAuthor signals that a publication reached the create step without an
// authenticated author. The create endpoint is gated by the authorization
// policy, so this is a wiring bug, not a client error.
var ErrNoAuthor = common.NewError("publication create reached without an authenticated author")

type PublicationService struct{}

// CreatePublication binds the authenticated caller as the author, stamps the
// publication date, and persists the record. Any author or date supplied by
// the client never reaches this point.
func (s *PublicationService) CreatePublication(author *model.Utilisateur, message string) (*model.Publication, error) {
	if author == nil {
		return nil, ErrNoAuthor
	}

	publication := &model.Publication{
		Message:         message,
		DatePublication: time.Now(),
		AuteurId:        author.Id,
	}
	db := database.GetDB()
	if err := db.Create(publication).Error; err != nil {
		return nil, err
	}
	publication.Auteur = author
	return publication, nil
}

func (s *PublicationService) GetPublication(id int) (*model.Publication, error) {
	db := database.GetDB()

	publication := &model.Publication{}
	err := db.Preload("Auteur").First(publication, id).Error
	if err != nil {
		return nil, err
	}
	return publication, nil
}

// ListPublications returns all publications ordered by date descending.
func (s *PublicationService) ListPublications() ([]model.Publication, error) {
	db := database.GetDB()

	var publications []model.Publication
	err := db.Preload("Auteur").
		Order("date_publication DESC").
		Find(&publications).
		Error
	if err != nil {
		return nil, err
	}
	return publications, nil
}

func (s *PublicationService) DeletePublication(id int) error {
	db := database.GetDB()
	return db.Delete(&model.Publication{}, id).Error
}
