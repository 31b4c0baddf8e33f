package entity

// Zone rectangle de placement en coordonnées page, origine en bas à gauche,
// unités en points PDF (1/72 de pouce).
type Zone struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// ZoneConfig zones nommées utilisées pour superposer les champs calculés sur un
// fond de page. Configuration par installation, pas par document.
type ZoneConfig struct {
	Entreprise Zone `json:"entreprise"`
	Numero     Zone `json:"numero"`
	Date       Zone `json:"date"`
	Client     Zone `json:"client"`
	Lignes     Zone `json:"lignes"` // seule zone bornée: width/height délimitent le tableau
	Totaux     Zone `json:"totaux"`
}

// DefaultZoneConfig configuration par défaut calée sur le gabarit A4 de
// référence de l'atelier (595 × 842 pt).
func DefaultZoneConfig() *ZoneConfig {
	return &ZoneConfig{
		Entreprise: Zone{X: 40, Y: 790},
		Numero:     Zone{X: 420, Y: 790},
		Date:       Zone{X: 420, Y: 772},
		Client:     Zone{X: 40, Y: 700},
		Lignes:     Zone{X: 40, Y: 610, Width: 515, Height: 380},
		Totaux:     Zone{X: 400, Y: 180},
	}
}
