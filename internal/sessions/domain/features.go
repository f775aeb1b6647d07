package domain

// FeatureCount nombre de colonnes continues du vecteur de caractéristiques
const FeatureCount = 6

// SessionFeatures représente le vecteur de caractéristiques d'une session:
// une ligne par session survivante, dérivée de ses évènements bruts
// Le drapeau success n'est consommé que par l'estimateur de probabilité et
// disparaît de la sortie finale
type SessionFeatures struct {
	sessionID            SessionID
	duration             float64
	avgPrice             float64
	avgDiscountPercent   float64
	totalDiscountPercent float64
	avgDiscountValue     float64
	totalDiscountValue   float64
	success              bool
	probability          *float64
}

// NewSessionFeatures crée un vecteur de caractéristiques de session
func NewSessionFeatures(
	sessionID SessionID,
	duration float64,
	avgPrice float64,
	avgDiscountPercent float64,
	totalDiscountPercent float64,
	avgDiscountValue float64,
	totalDiscountValue float64,
	success bool,
) *SessionFeatures {
	return &SessionFeatures{
		sessionID:            sessionID,
		duration:             duration,
		avgPrice:             avgPrice,
		avgDiscountPercent:   avgDiscountPercent,
		totalDiscountPercent: totalDiscountPercent,
		avgDiscountValue:     avgDiscountValue,
		totalDiscountValue:   totalDiscountValue,
		success:              success,
	}
}

// SessionID retourne l'identifiant de session
func (sf *SessionFeatures) SessionID() SessionID {
	return sf.sessionID
}

// Duration retourne la durée de la session en secondes
// Zéro pour une session à évènement unique
func (sf *SessionFeatures) Duration() float64 {
	return sf.duration
}

// AvgPrice retourne le prix moyen des produits consultés
func (sf *SessionFeatures) AvgPrice() float64 {
	return sf.avgPrice
}

// AvgDiscountPercent retourne la fraction de remise moyenne
func (sf *SessionFeatures) AvgDiscountPercent() float64 {
	return sf.avgDiscountPercent
}

// TotalDiscountPercent retourne la somme des fractions de remise
func (sf *SessionFeatures) TotalDiscountPercent() float64 {
	return sf.totalDiscountPercent
}

// AvgDiscountValue retourne le montant moyen de remise
func (sf *SessionFeatures) AvgDiscountValue() float64 {
	return sf.avgDiscountValue
}

// TotalDiscountValue retourne le montant total de remise
func (sf *SessionFeatures) TotalDiscountValue() float64 {
	return sf.totalDiscountValue
}

// Success vérifie si la session s'est conclue par un achat
func (sf *SessionFeatures) Success() bool {
	return sf.success
}

// Probability retourne la probabilité d'achat estimée et un indicateur
// d'affectation effectuée
func (sf *SessionFeatures) Probability() (float64, bool) {
	if sf.probability == nil {
		return 0, false
	}
	return *sf.probability, true
}

// SetProbability affecte la probabilité d'achat estimée
func (sf *SessionFeatures) SetProbability(p float64) {
	sf.probability = &p
}

// Vector retourne les six caractéristiques continues, dans l'ordre des
// colonnes de sortie
func (sf *SessionFeatures) Vector() [FeatureCount]float64 {
	return [FeatureCount]float64{
		sf.duration,
		sf.avgPrice,
		sf.avgDiscountPercent,
		sf.totalDiscountPercent,
		sf.avgDiscountValue,
		sf.totalDiscountValue,
	}
}
