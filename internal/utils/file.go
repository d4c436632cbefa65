package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

func GetFileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func IsAllowedFileType(filename string, allowedTypes []string) bool {
	ext := strings.TrimPrefix(GetFileExtension(filename), ".")

	for _, allowedType := range allowedTypes {
		if ext == allowedType {
			return true
		}
	}

	return false
}

func IsImageFile(filename string) bool {
	return IsAllowedFileType(filename, AllowedImageTypes)
}

// GenerateUniqueFilename prefixes the original extension with a timestamp and
// random suffix so repeated uploads never collide under the same key prefix.
func GenerateUniqueFilename(originalFilename string) string {
	ext := GetFileExtension(originalFilename)
	timestamp := time.Now().Unix()
	randomStr := GenerateRandomString(8)

	return fmt.Sprintf("%d_%s%s", timestamp, randomStr, ext)
}

// ShopLogoKey and friends define the object-store layout. Keys group all of a
// shop's objects under its ID so tenant deletion is a prefix delete.
func ShopLogoKey(shopID, filename string) string {
	return fmt.Sprintf("shops/%s/%s", shopID, filename)
}

func StoreImageKey(shopID, filename string) string {
	return fmt.Sprintf("stores/%s/%s", shopID, filename)
}

func MenuItemImageKey(shopID, filename string) string {
	return fmt.Sprintf("menu-items/%s/%s", shopID, filename)
}
