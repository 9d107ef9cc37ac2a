package hh

// Supported cities and their HH area identifiers. The bot only offers
// these fifteen; anything else is a "no match" outcome, not an error.
var cityToAreaID = map[string]string{
	"Москва":          "1",
	"Санкт-Петербург": "2",
	"Новосибирск":     "4",
	"Екатеринбург":    "3",
	"Казань":          "88",
	"Нижний Новгород": "66",
	"Челябинск":       "104",
	"Самара":          "72",
	"Омск":            "68",
	"Ростов-на-Дону":  "76",
	"Уфа":             "99",
	"Красноярск":      "54",
	"Воронеж":         "26",
	"Пермь":           "90",
	"Волгоград":       "27",
}

var supportedCities = []string{
	"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург", "Казань",
	"Нижний Новгород", "Челябинск", "Самара", "Омск", "Ростов-на-Дону",
	"Уфа", "Красноярск", "Воронеж", "Пермь", "Волгоград",
}

func AreaIDByCity(city string) (string, bool) {
	id, ok := cityToAreaID[city]
	return id, ok
}

func SupportedCities() []string {
	cities := make([]string, len(supportedCities))
	copy(cities, supportedCities)
	return cities
}
