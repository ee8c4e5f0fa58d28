package validation

import (
	"fmt"
	"regexp"
)

// SlugPattern определяет допустимый формат slug для сайтов и статей:
// строчные латинские буквы, цифры и дефисы, без дефисов по краям
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// MaxSlugLen максимальная длина slug
const MaxSlugLen = 64

// ValidateSlug проверяет, что slug пригоден для URL
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("slug cannot be empty")
	}

	if len(slug) > MaxSlugLen {
		return fmt.Errorf("slug must not exceed %d characters", MaxSlugLen)
	}

	if !SlugPattern.MatchString(slug) {
		return fmt.Errorf("slug can only contain lowercase letters, numbers and hyphens")
	}

	return nil
}
