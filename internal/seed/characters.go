// Package seed holds the canonical catalog loaded by POST /api/seed.
package seed

import "github.com/dom/zodiac-catalog/internal/domain"

// Characters returns a fresh copy of the canonical Saint Seiya characters.
func Characters() []domain.CharacterFields {
	return []domain.CharacterFields{
		{
			Name:        "Seiya de Pegaso",
			ZodiacSign:  "Sagitario",
			ImageURL:    "https://i.pinimg.com/474x/d9/9e/85/d99e855c6de91918796ae3af711005d5.jpg",
			Description: "Caballero de bronce de Pegaso, protagonista principal",
		},
		{
			Name:        "Shiryu de Dragón",
			ZodiacSign:  "Libra",
			ImageURL:    "https://e7.pngegg.com/pngimages/232/187/png-clipart-dragon-shiry%C5%AB-pegasus-seiya-%E8%81%96%E9%97%98%E5%A3%AB%E6%98%9F%E7%9F%A2-%E3%82%AE%E3%83%A3%E3%83%A9%E3%82%AF%E3%82%B7%E3%83%BC%E3%82%AB%E3%83%BC%E3%83%89%E3%83%90%E3%83%88%E3%83%AB-saint-seiya-knights-of-the-zodiac-anime-anime-superhero-pin-thumbnail.png",
			Description: "Caballero de bronce de Dragón, discípulo del Maestro Dohko",
		},
		{
			Name:        "Hyoga de Cisne",
			ZodiacSign:  "Acuario",
			ImageURL:    "https://i.pinimg.com/474x/71/45/09/714509ece562495f6b0a768ff5dc1b1c.jpg",
			Description: "Caballero de bronce de Cisne, maestro del hielo",
		},
		{
			Name:        "Shun de Andrómeda",
			ZodiacSign:  "Virgo",
			ImageURL:    "https://w7.pngwing.com/pngs/811/754/png-transparent-andromeda-shun-pegasus-seiya-saint-seiya-brave-soldiers-saint-seiya-knights-of-the-zodiac-milo-television-manga-fictional-character-thumbnail.png",
			Description: "Caballero de bronce de Andrómeda, hermano de Ikki",
		},
		{
			Name:        "Ikki de Fénix",
			ZodiacSign:  "Leo",
			ImageURL:    "https://c0.klipartz.com/pngpicture/186/714/gratis-png-phoenix-ikki-phoenix-thumbnail.png",
			Description: "Caballero de bronce de Fénix, hermano mayor de Shun",
		},
		{
			Name:        "Saga de Géminis",
			ZodiacSign:  "Géminis",
			ImageURL:    "https://w7.pngwing.com/pngs/765/20/png-transparent-gemini-saga-pegasus-seiya-athena-cygnus-hyoga-phoenix-ikki-anime-purple-fictional-character-cartoon-thumbnail.png",
			Description: "Caballero dorado de Géminis, personalidad dual",
		},
		{
			Name:        "Aiolia de Leo",
			ZodiacSign:  "Leo",
			ImageURL:    "https://p7.hiclipart.com/preview/168/87/632/cancer-deathmask-pegasus-seiya-leo-aiolia-saint-seiya-knights-of-the-zodiac-others.jpg",
			Description: "Caballero dorado de Leo, hermano de Aioros",
		},
		{
			Name:        "Shaka de Virgo",
			ZodiacSign:  "Virgo",
			ImageURL:    "https://c0.klipartz.com/pngpicture/922/33/gratis-png-shaka-pegasus-seiya-andromeda-shun-saint-seiya-caballeros-del-zodiaco-saint-seiya-alma-de-los-soldados-virgo.png",
			Description: "Caballero dorado de Virgo, el más cercano a los dioses",
		},
		{
			Name:        "Camus de Acuario",
			ZodiacSign:  "Acuario",
			ImageURL:    "https://e7.pngegg.com/pngimages/689/372/png-clipart-aquarius-camus-pegasus-seiya-capricorn-shura-aries-mu-cygnus-hyoga-aquarius-fictional-character-shaka-thumbnail.png",
			Description: "Caballero dorado de Acuario, maestro de Hyoga",
		},
		{
			Name:        "Mu de Aries",
			ZodiacSign:  "Aries",
			ImageURL:    "https://i.pinimg.com/736x/37/bb/a0/37bba0bcc6d71b844ca2c86f323fb227.jpg",
			Description: "Caballero dorado de Aries, reparador de armaduras",
		},
		{
			Name:        "Aldebarán de Tauro",
			ZodiacSign:  "Tauro",
			ImageURL:    "https://i.pinimg.com/736x/30/d9/0b/30d90bfa90b49da1687b347d5c9ee645.jpg",
			Description: "Caballero dorado de Tauro, gran corazón noble",
		},
		{
			Name:        "Milo de Escorpio",
			ZodiacSign:  "Escorpio",
			ImageURL:    "https://i.pinimg.com/474x/39/12/7c/39127c98396f1b12f60a39c7de0f4300.jpg",
			Description: "Caballero dorado de Escorpio, aguijón escarlata",
		},
	}
}
