package infrastructure

import "github.com/yamao-tech/catalog-backend/pkg/e"

// GetExtensionFromMIME возвращает расширение файла для поддерживаемых
// типов изображений.
func GetExtensionFromMIME(mimeType string) (string, error) {
	switch mimeType {
	case "image/jpeg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/webp":
		return "webp", nil
	case "image/gif":
		return "gif", nil
	case "image/svg+xml":
		return "svg", nil
	default:
		return "", e.ErrUnsupportedMediaType
	}
}
