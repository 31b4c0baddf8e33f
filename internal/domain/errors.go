package domain

import "errors"

// Erreurs de domaine (sans dépendances externes).
var (
	ErrNotFound     = errors.New("ressource introuvable")
	ErrInvalidInput = errors.New("entrée invalide")
	ErrDuplicate    = errors.New("ressource dupliquée")

	// ErrRemote service de génération distant injoignable ou en échec après relances.
	ErrRemote = errors.New("service de génération distant indisponible")
	// ErrTemplate fond de page illisible ou de format non géré pendant le rendu local.
	ErrTemplate = errors.New("fond de page inexploitable")
	// ErrRender échec du rendu de la mise en page standard; dernier niveau de repli.
	ErrRender = errors.New("échec du rendu PDF")
)
