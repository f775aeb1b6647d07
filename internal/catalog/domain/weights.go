package domain

// DefaultCategoryWeights table de pondération des catégories
// Configuration figée du processus: la reproduire à l'identique est requis
// pour obtenir des scores hotness identiques. Passée explicitement au scorer,
// jamais mutée
var DefaultCategoryWeights = map[string]float64{
	"Gry i konsole":                     1.0 / 3.0,
	"Gry komputerowe":                   2.0 / 3.0,
	"Gry na konsole":                    1.0 / 3.0,
	"Gry PlayStation3":                  1.0 / 3.0,
	"Gry Xbox 360":                      1.0 / 3.0,
	"Komputery":                         1.0 / 3.0,
	"Drukarki i skanery":                1.0 / 3.0,
	"Biurowe urządzenia wielofunkcyjne": 1.0 / 3.0,
	"Monitory":                          1.0 / 3.0,
	"Monitory LCD":                      1.0 / 3.0,
	"Tablety i akcesoria":               1.0 / 3.0,
	"Tablety":                           1.0 / 3.0,
	"Sprzęt RTV":                        1.0 / 3.0,
	"Audio":                             1.0 / 3.0,
	"Słuchawki":                         1.0 / 3.0,
	"Przenośne audio i video":           1.0 / 3.0,
	"Odtwarzacze mp3 i mp4":             1.0 / 3.0,
	"Video":                             1.0 / 3.0,
	"Odtwarzacze DVD":                   1.0 / 3.0,
	"Telewizory i akcesoria":            1.0 / 6.0,
	"Anteny RTV":                        1.0 / 6.0,
	"Okulary 3D":                        1.0 / 6.0,
	"Telefony i akcesoria":              1.0 / 3.0,
	"Akcesoria telefoniczne":            1.0 / 3.0,
	"Zestawy głośnomówiące":             1.0 / 3.0,
	"Zestawy słuchawkowe":               1.0 / 3.0,
	"Telefony komórkowe":                2.0 / 3.0,
	"Telefony stacjonarne":              2.0 / 3.0,
}
