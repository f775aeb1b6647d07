package domain

import (
	"errors"
	"time"
)

// TimeSpan représente l'intervalle temporel couvert par une session
// DESIGN PATTERN: Value Object (DDD)
//   - Immutable: pas de setters, valeurs fixées à la création
//   - Validation dans le constructeur
type TimeSpan struct {
	start time.Time
	end   time.Time
}

// NewTimeSpan crée un TimeSpan avec validation
// Un span ponctuel (start == end) est valide: session à évènement unique
func NewTimeSpan(start, end time.Time) (TimeSpan, error) {
	if end.Before(start) {
		return TimeSpan{}, errors.New("time span end cannot precede start")
	}
	return TimeSpan{start: start, end: end}, nil
}

// Start retourne le début de l'intervalle
func (ts TimeSpan) Start() time.Time {
	return ts.start
}

// End retourne la fin de l'intervalle
func (ts TimeSpan) End() time.Time {
	return ts.end
}

// Seconds retourne la durée de l'intervalle en secondes
func (ts TimeSpan) Seconds() float64 {
	return ts.end.Sub(ts.start).Seconds()
}
