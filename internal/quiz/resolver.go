package quiz

import "github.com/oriently/oriently-backend/internal/domain"

// ResolveProfile maps a winning category to its static profile. The table
// is validated total at load time, so every category resolves.
func (b *Bank) ResolveProfile(winner domain.Category) domain.Profile {
	if p, ok := b.profiles[winner]; ok {
		return p
	}
	// Unknown categories map to the first profile in enumeration order.
	return b.profiles[domain.Categories[0]]
}
