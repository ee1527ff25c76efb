package model

import (
	"github.com/go-playground/validator/v10"
)

// Genres 固定的影片类型枚举
var Genres = []string{
	"action", "adventure", "animation", "comedy", "crime",
	"documentary", "drama", "family", "fantasy", "history",
	"horror", "music", "mystery", "romance", "science-fiction",
	"thriller", "war", "western",
}

// MaturityRatings 固定的年龄分级枚举
var MaturityRatings = []string{
	"G", "PG", "PG-13", "R", "NC-17",
	"TV-Y", "TV-Y7", "TV-G", "TV-PG", "TV-14", "TV-MA",
}

var (
	genreSet    = toSet(Genres)
	maturitySet = toSet(MaturityRatings)
)

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// IsValidGenre 判断类型是否属于枚举
func IsValidGenre(genre string) bool {
	_, ok := genreSet[genre]
	return ok
}

// IsValidMaturityRating 判断年龄分级是否属于枚举
func IsValidMaturityRating(rating string) bool {
	_, ok := maturitySet[rating]
	return ok
}

// GenreValidator validator 自定义校验：genre
func GenreValidator(fl validator.FieldLevel) bool {
	return IsValidGenre(fl.Field().String())
}

// MaturityValidator validator 自定义校验：maturity
func MaturityValidator(fl validator.FieldLevel) bool {
	return IsValidMaturityRating(fl.Field().String())
}
