package entity

import "strings"

// BackgroundAsset fond de page fourni par l'utilisateur: image matricielle ou
// document PDF existant, décodé depuis un data URI.
type BackgroundAsset struct {
	MIME string
	Data []byte
}

// IsImage indique un fond matriciel (PNG ou JPEG).
func (b *BackgroundAsset) IsImage() bool {
	return strings.HasPrefix(b.MIME, "image/")
}

// IsPDF indique un fond PDF existant.
func (b *BackgroundAsset) IsPDF() bool {
	return b.MIME == "application/pdf"
}
