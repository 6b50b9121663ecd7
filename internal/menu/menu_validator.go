package menu

import (
	"errors"
	"path/filepath"
	"strings"
)

var allowedCategories = map[string]bool{
	"appetizer": true,
	"main":      true,
	"dessert":   true,
	"drink":     true,
	"side":      true,
}

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func ValidateItem(item *MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("name is required")
	}
	if !allowedCategories[item.Category] {
		return errors.New("category must be one of appetizer, main, dessert, drink, side")
	}
	if item.Price <= 0 {
		return errors.New("price must be greater than zero")
	}
	return nil
}

func ValidateImageExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return errors.New("file extension missing")
	}

	if !allowedImageExt[ext] {
		return errors.New("file type not allowed")
	}

	return nil
}
