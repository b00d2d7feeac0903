package service

import (
	"github.com/dom/zodiac-catalog/internal/repository"
)

type Services struct {
	Character *CharacterService
}

func NewServices(repos *repository.Repositories, publisher EventPublisher) *Services {
	return &Services{
		Character: NewCharacterService(repos.Character, publisher),
	}
}
