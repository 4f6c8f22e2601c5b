package util

import "patch_backend/internal/model"

// ValidateLinks 校验社交链接的键，只允许 model.SocialKeys 中的键
func ValidateLinks(links model.SocialLinks) error {
	if links == nil {
		return nil
	}
	allowed := make(map[string]bool, len(model.SocialKeys))
	for _, k := range model.SocialKeys {
		allowed[k] = true
	}
	for k := range links {
		if !allowed[k] {
			return ErrInvalidLinks
		}
	}
	return nil
}
